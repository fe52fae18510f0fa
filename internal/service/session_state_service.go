package service

import (
	"context"

	"clipstream-be/internal/entity"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
)

type ISessionStateService interface {
	// EnsureMode records the visitor's feed mode and, on a random→sorted
	// transition, clears the random-mode exclusion sets so stale ids do not
	// leak into sorted results. The reverse transition needs no cleanup:
	// sorted mode never populates the sets.
	EnsureMode(ctx context.Context, visitorId string, mode entity.FeedMode, kinds []string)
}

type sessionStateService struct {
	cache contract.SessionCacheRepository
	log   logger.ILogger
}

func NewSessionStateService(cache contract.SessionCacheRepository, log logger.ILogger) ISessionStateService {
	return &sessionStateService{cache: cache, log: log}
}

func (s *sessionStateService) EnsureMode(ctx context.Context, visitorId string, mode entity.FeedMode, kinds []string) {
	current, err := s.cache.GetMode(ctx, visitorId)
	if err != nil {
		// Cache outage degrades de-duplication, never the request.
		s.log.Warn("session", "mode flag unavailable, proceeding without it", map[string]interface{}{
			"visitor_id": visitorId,
			"error":      err.Error(),
		})
		return
	}
	if current == mode {
		return
	}

	if current == entity.ModeRandom && mode == entity.ModeSorted {
		for _, kind := range kinds {
			key := contract.SessionKey{VisitorId: visitorId, Kind: kind}
			if err := s.cache.Clear(ctx, key); err != nil {
				s.log.Warn("session", "failed to clear exclusion set on mode switch", map[string]interface{}{
					"visitor_id": visitorId,
					"kind":       kind,
					"error":      err.Error(),
				})
			}
		}
	}

	if err := s.cache.SetMode(ctx, visitorId, mode); err != nil {
		s.log.Warn("session", "failed to record feed mode", map[string]interface{}{
			"visitor_id": visitorId,
			"error":      err.Error(),
		})
	}
}
