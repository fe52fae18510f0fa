package service

import (
	"context"

	"clipstream-be/internal/config"
	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/cursorcodec"
	"clipstream-be/pkg/keyset"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchQuery) (*dto.SearchResponse, error)
}

// searchService runs keyword search as a relevance-ranked continuation walk
// across videos, playlists and channels. Pages are always deterministic, so
// no exclusion sets are involved.
type searchService struct {
	fetchers map[string]contract.SourceFetcher
	cfg      config.FeedConfig
	log      logger.ILogger
}

func NewSearchService(
	videoFetcher contract.SourceFetcher,
	playlistFetcher contract.SourceFetcher,
	channelFetcher contract.SourceFetcher,
	cfg config.FeedConfig,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		fetchers: map[string]contract.SourceFetcher{
			entity.KindVideo:    videoFetcher,
			entity.KindPlaylist: playlistFetcher,
			entity.KindChannel:  channelFetcher,
		},
		cfg: cfg,
		log: log,
	}
}

// searchSortFor ranks within a kind: relevance first, then the kind's
// popularity counter, then recency, id last for a total order.
func searchSortFor(kind string) keyset.Sort {
	popularity := "views"
	switch kind {
	case entity.KindPlaylist:
		popularity = "itemCount"
	case entity.KindChannel:
		popularity = "subscribers"
	}
	return keyset.Sort{
		{Name: "score", Direction: keyset.Desc},
		{Name: popularity, Direction: keyset.Desc},
		{Name: "createdAt", Direction: keyset.Desc},
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchQuery) (*dto.SearchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.PageSize
	}

	var state cursorcodec.State
	if req.Cursors != "" {
		decoded, err := cursorcodec.Decode(req.Cursors)
		if err != nil {
			return nil, err
		}
		state = decoded
	}

	kinds := s.activeKinds(req.Type, state)
	alloc := s.allocate(limit, kinds)

	next := cursorcodec.State{}
	for kind := range s.fetchers {
		next[kind] = nil
	}

	items := make([]dto.ContentItem, 0, limit)
	leftover := 0
	for _, kind := range kinds {
		budget := alloc[kind] + leftover
		if budget <= 0 {
			// Zero quota at a small limit; keep the kind's slot alive so
			// later pages (or the top-up below) can still reach it.
			next[kind] = carryToken(state[kind], contract.ModeContinuation)
			continue
		}

		result, err := s.fetchers[kind].Fetch(ctx, contract.FetchRequest{
			Mode:   contract.ModeContinuation,
			Quota:  budget,
			Token:  state[kind],
			Search: req.Search,
			Tag:    req.Tag,
			Sort:   searchSortFor(kind),
		})
		if err != nil {
			return nil, err
		}

		leftover = budget - len(result.Items)
		items = append(items, result.Items...)
		next[kind] = result.NextToken
	}

	// Whatever the tail kinds could not fill flows back to the first kind
	// that still has matches.
	for _, kind := range kinds {
		if leftover <= 0 {
			break
		}
		if next[kind] == nil {
			continue
		}

		result, err := s.fetchers[kind].Fetch(ctx, contract.FetchRequest{
			Mode:   contract.ModeContinuation,
			Quota:  leftover,
			Token:  next[kind],
			Search: req.Search,
			Tag:    req.Tag,
			Sort:   searchSortFor(kind),
		})
		if err != nil {
			return nil, err
		}

		leftover -= len(result.Items)
		items = append(items, result.Items...)
		next[kind] = result.NextToken
	}

	sortItemsByRelevance(items)

	res := &dto.SearchResponse{Data: items}
	if !next.Exhausted() {
		encoded, err := cursorcodec.Encode(next)
		if err != nil {
			return nil, err
		}
		res.Cursors = &encoded
	}
	return res, nil
}

// activeKinds resolves the type filter and drops kinds whose cursor chain
// already ran dry. An unknown type falls back to all kinds. The order here
// is also the leftover-donation order.
func (s *searchService) activeKinds(typeFilter string, state cursorcodec.State) []string {
	var candidates []string
	switch typeFilter {
	case entity.KindVideo, entity.KindShort:
		candidates = []string{entity.KindVideo}
	case entity.KindPlaylist:
		candidates = []string{entity.KindPlaylist}
	case entity.KindChannel:
		candidates = []string{entity.KindChannel}
	default:
		candidates = []string{entity.KindChannel, entity.KindPlaylist, entity.KindVideo}
	}

	kinds := make([]string, 0, len(candidates))
	for _, kind := range candidates {
		if state != nil && state[kind] == nil {
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

// allocate splits the page: channels get a small fixed shelf, playlists a
// quarter of what remains, videos the rest. With a single active kind the
// whole limit goes to it.
func (s *searchService) allocate(limit int, kinds []string) map[string]int {
	alloc := map[string]int{}
	if len(kinds) == 1 {
		alloc[kinds[0]] = limit
		return alloc
	}

	remaining := limit
	for _, kind := range kinds {
		switch kind {
		case entity.KindChannel:
			q := s.cfg.SearchUserQuota
			if q > remaining {
				q = remaining
			}
			alloc[kind] = q
			remaining -= q
		case entity.KindPlaylist:
			q := remaining / 4
			alloc[kind] = q
			remaining -= q
		default:
			alloc[kind] = remaining
			remaining = 0
		}
	}
	return alloc
}
