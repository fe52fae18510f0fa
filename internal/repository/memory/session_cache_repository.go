package memory

import (
	"context"
	"sync"
	"time"

	"clipstream-be/internal/entity"
	"clipstream-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// SessionCacheRepository is the in-process fallback for the shared Redis
// cache: used when no REDIS_URL is configured and by tests that need
// deterministic TTL behavior. Not suitable for multi-replica deployments.
type SessionCacheRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionCacheRepository(ttl time.Duration) *SessionCacheRepository {
	// Purge expired entries at a fraction of the TTL so tests with short
	// TTLs still observe expiry.
	return &SessionCacheRepository{
		cache: cache.New(ttl, ttl/2),
	}
}

func seenKey(key contract.SessionKey) string {
	return "session:" + key.VisitorId + "-" + key.Kind
}

func modeKey(visitorId string) string {
	return "session:" + visitorId + "-type"
}

func (r *SessionCacheRepository) AddSeen(_ context.Context, key contract.SessionKey, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set := make(map[string]struct{})
	if existing, found := r.cache.Get(seenKey(key)); found {
		for id := range existing.(map[string]struct{}) {
			set[id] = struct{}{}
		}
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}

	// Set refreshes the TTL, matching the Redis adapter's Expire on write.
	r.cache.Set(seenKey(key), set, cache.DefaultExpiration)
	return nil
}

func (r *SessionCacheRepository) ListSeen(_ context.Context, key contract.SessionKey) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, found := r.cache.Get(seenKey(key))
	if !found {
		return nil, nil
	}

	set := existing.(map[string]struct{})
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *SessionCacheRepository) Clear(_ context.Context, key contract.SessionKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(seenKey(key))
	return nil
}

func (r *SessionCacheRepository) GetMode(_ context.Context, visitorId string) (entity.FeedMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if mode, found := r.cache.Get(modeKey(visitorId)); found {
		return mode.(entity.FeedMode), nil
	}
	return "", nil
}

func (r *SessionCacheRepository) SetMode(_ context.Context, visitorId string, mode entity.FeedMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Set(modeKey(visitorId), mode, cache.DefaultExpiration)
	return nil
}
