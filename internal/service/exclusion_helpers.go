package service

import (
	"context"

	"clipstream-be/internal/dto"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
)

// listSeenSafe reads a visitor's exclusion set, degrading to "no exclusions
// known" on cache failure.
func listSeenSafe(ctx context.Context, cache contract.SessionCacheRepository, log logger.ILogger, key contract.SessionKey) []string {
	seen, err := cache.ListSeen(ctx, key)
	if err != nil {
		log.Warn("feed", "exclusion set unavailable, sampling without it", map[string]interface{}{
			"visitor_id": key.VisitorId,
			"kind":       key.Kind,
			"error":      err.Error(),
		})
		return nil
	}
	return seen
}

// addSeenSafe records freshly served ids, logging instead of failing the
// response when the cache is down.
func addSeenSafe(ctx context.Context, cache contract.SessionCacheRepository, log logger.ILogger, key contract.SessionKey, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := cache.AddSeen(ctx, key, ids); err != nil {
		log.Warn("feed", "failed to record seen ids", map[string]interface{}{
			"visitor_id": key.VisitorId,
			"kind":       key.Kind,
			"error":      err.Error(),
		})
	}
}

func idsOf(items []dto.ContentItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Id)
	}
	return ids
}
