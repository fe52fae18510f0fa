package service

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"clipstream-be/internal/config"
	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/mapper"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/cursorcodec"
)

type IShortsService interface {
	// GetShorts serves a page for the shorts player. seedId, when set,
	// names the short that opened the player and must lead the first page.
	GetShorts(ctx context.Context, visitorId, seedId string, req *dto.ShortsQuery) (*dto.ShortsResponse, error)
}

// shortsService serves the vertical shorts player: an optional seed short
// pinned first, then a random sample that never repeats within the session.
type shortsService struct {
	shortFetcher contract.SourceFetcher
	videos       contract.VideoRepository
	cache        contract.SessionCacheRepository
	state        ISessionStateService
	cfg          config.FeedConfig
	log          logger.ILogger
}

func NewShortsService(
	shortFetcher contract.SourceFetcher,
	videos contract.VideoRepository,
	cache contract.SessionCacheRepository,
	state ISessionStateService,
	cfg config.FeedConfig,
	log logger.ILogger,
) IShortsService {
	return &shortsService{
		shortFetcher: shortFetcher,
		videos:       videos,
		cache:        cache,
		state:        state,
		cfg:          cfg,
		log:          log,
	}
}

func (s *shortsService) GetShorts(ctx context.Context, visitorId, seedId string, req *dto.ShortsQuery) (*dto.ShortsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.ShortsPageSize
	}

	var state cursorcodec.State
	if req.Cursors != "" {
		decoded, err := cursorcodec.Decode(req.Cursors)
		if err != nil {
			return nil, err
		}
		state = decoded
	}

	s.state.EnsureMode(ctx, visitorId, entity.ModeRandom, []string{entity.KindShort})

	key := contract.SessionKey{VisitorId: visitorId, Kind: entity.KindShort}
	items := make([]dto.ContentItem, 0, limit)

	// The seed short opens the page only on the first request of a chain;
	// continuation pages already carry it in the exclusion set.
	if seedId != "" && state == nil {
		seed, err := s.fetchSeed(ctx, seedId)
		if err != nil {
			return nil, err
		}
		items = append(items, *seed)
		addSeenSafe(ctx, s.cache, s.log, key, []string{seed.Id})
	}

	next := cursorcodec.State{entity.KindShort: nil}
	if state == nil || state[entity.KindShort] != nil {
		budget := limit - len(items)
		result, err := s.shortFetcher.Fetch(ctx, contract.FetchRequest{
			Mode:        contract.ModeSample,
			Quota:       budget,
			Token:       state[entity.KindShort],
			ExcludedIds: listSeenSafe(ctx, s.cache, s.log, key),
		})
		if err != nil {
			return nil, err
		}
		addSeenSafe(ctx, s.cache, s.log, key, idsOf(result.Items))
		items = append(items, result.Items...)
		next[entity.KindShort] = result.NextToken
	}

	res := &dto.ShortsResponse{Data: items}
	if !next.Exhausted() {
		encoded, err := cursorcodec.Encode(next)
		if err != nil {
			return nil, err
		}
		res.Cursors = &encoded
	}
	return res, nil
}

func (s *shortsService) fetchSeed(ctx context.Context, id string) (*dto.ContentItem, error) {
	video, err := s.videos.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.Kind != entity.KindShort || video.Visibility != entity.VisibilityPublic {
		return nil, fiber.NewError(fiber.StatusNotFound, "short not found")
	}
	item := mapper.VideoToContentItem(video)
	return &item, nil
}
