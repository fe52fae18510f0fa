package contract

import (
	"context"

	"clipstream-be/internal/entity"
)

// SessionKey addresses one visitor's exclusion set for one content kind.
// Rendering the key into a cache-specific string is the adapter's job;
// call sites never concatenate key strings themselves.
type SessionKey struct {
	VisitorId string
	Kind      string
}

// SessionCacheRepository is the shared-cache contract for per-visitor feed
// state. Every write refreshes the entry TTL; expiry is the only garbage
// collection. Implementations must be safe for concurrent use — updates are
// additive, and the read-modify-write race between two first-page requests
// is an accepted best-effort gap.
type SessionCacheRepository interface {
	AddSeen(ctx context.Context, key SessionKey, ids []string) error
	ListSeen(ctx context.Context, key SessionKey) ([]string, error)
	Clear(ctx context.Context, key SessionKey) error

	// Mode flag for the visitor: random vs sorted. GetMode returns the
	// empty mode when nothing is recorded.
	GetMode(ctx context.Context, visitorId string) (entity.FeedMode, error)
	SetMode(ctx context.Context, visitorId string, mode entity.FeedMode) error
}
