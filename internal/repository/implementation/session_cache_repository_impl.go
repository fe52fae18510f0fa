package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipstream-be/internal/entity"
	"clipstream-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const cacheOpTimeout = 2 * time.Second

// redisSessionCacheRepository keeps per-visitor feed state in the shared
// Redis instance so any replica can serve any request. Keys:
//
//	session:{visitorId}-{kind}  exclusion set (Redis set)
//	session:{visitorId}-type    mode flag (string)
//
// The key layout lives here and nowhere else.
type redisSessionCacheRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionCacheRepository(rdb *redis.Client, ttl time.Duration) contract.SessionCacheRepository {
	return &redisSessionCacheRepository{rdb: rdb, ttl: ttl}
}

func seenKey(key contract.SessionKey) string {
	return fmt.Sprintf("session:%s-%s", key.VisitorId, key.Kind)
}

func modeKey(visitorId string) string {
	return fmt.Sprintf("session:%s-type", visitorId)
}

func (r *redisSessionCacheRepository) AddSeen(ctx context.Context, key contract.SessionKey, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}

	pipe := r.rdb.TxPipeline()
	pipe.SAdd(ctx, seenKey(key), members...)
	pipe.Expire(ctx, seenKey(key), r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisSessionCacheRepository) ListSeen(ctx context.Context, key contract.SessionKey) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	return r.rdb.SMembers(ctx, seenKey(key)).Result()
}

func (r *redisSessionCacheRepository) Clear(ctx context.Context, key contract.SessionKey) error {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	return r.rdb.Del(ctx, seenKey(key)).Err()
}

func (r *redisSessionCacheRepository) GetMode(ctx context.Context, visitorId string) (entity.FeedMode, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	mode, err := r.rdb.Get(ctx, modeKey(visitorId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entity.FeedMode(mode), nil
}

func (r *redisSessionCacheRepository) SetMode(ctx context.Context, visitorId string, mode entity.FeedMode) error {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	return r.rdb.Set(ctx, modeKey(visitorId), string(mode), r.ttl).Err()
}
