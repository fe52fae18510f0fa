package service

import (
	"context"
	"math/rand"
	"time"

	"clipstream-be/internal/config"
	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/cursorcodec"
	"clipstream-be/pkg/keyset"
	"clipstream-be/pkg/quota"
)

type IFeedService interface {
	GetFeed(ctx context.Context, visitorId string, req *dto.FeedQuery) (*dto.FeedResponse, error)
}

// feedService assembles the home feed: a main rail mixing videos and
// playlists plus a separate shorts shelf. Without a sort parameter the page
// is a random sample de-duplicated through exclusion sets; with one, it is
// a deterministic keyset walk driven by the cursor.
type feedService struct {
	fetchers map[string]contract.SourceFetcher
	cache    contract.SessionCacheRepository
	state    ISessionStateService
	cfg      config.FeedConfig
	log      logger.ILogger

	// newRng is per-request so concurrent requests never share a source;
	// tests replace it with a seeded generator.
	newRng func() *rand.Rand
}

func NewFeedService(
	videoFetcher contract.SourceFetcher,
	shortFetcher contract.SourceFetcher,
	playlistFetcher contract.SourceFetcher,
	cache contract.SessionCacheRepository,
	state ISessionStateService,
	cfg config.FeedConfig,
	log logger.ILogger,
) IFeedService {
	return &feedService{
		fetchers: map[string]contract.SourceFetcher{
			entity.KindVideo:    videoFetcher,
			entity.KindShort:    shortFetcher,
			entity.KindPlaylist: playlistFetcher,
		},
		cache: cache,
		state: state,
		cfg:   cfg,
		log:   log,
		newRng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *feedService) GetFeed(ctx context.Context, visitorId string, req *dto.FeedQuery) (*dto.FeedResponse, error) {
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

	srt := parseSortParam(req.Sort)
	sorted := len(srt) > 0 || state.HasSorted()

	fetchMode := contract.ModeSample
	sessionMode := entity.ModeRandom
	if sorted {
		fetchMode = contract.ModeContinuation
		sessionMode = entity.ModeSorted
		if len(srt) == 0 {
			srt = defaultRecencySort()
		}
	}

	s.state.EnsureMode(ctx, visitorId, sessionMode, []string{entity.KindVideo, entity.KindShort, entity.KindPlaylist})

	mainKinds := s.mainKinds(state, srt, sorted)
	alloc := quota.Allocate(limit, quota.Weights{
		entity.KindVideo:    s.cfg.VideoWeight,
		entity.KindPlaylist: s.cfg.PlaylistWeight,
	}, mainKinds)

	next := cursorcodec.State{
		entity.KindVideo:    nil,
		entity.KindShort:    nil,
		entity.KindPlaylist: nil,
	}

	mainItems := make([]dto.ContentItem, 0, limit)
	leftover := 0
	for _, kind := range mainKinds {
		budget := alloc[kind] + leftover
		if budget <= 0 {
			// Not queried this page; a nil slot would read as exhausted,
			// so the source keeps a live token for later pages.
			next[kind] = carryToken(state[kind], fetchMode)
			continue
		}

		result, err := s.fetchSource(ctx, visitorId, kind, contract.FetchRequest{
			Mode:  fetchMode,
			Quota: budget,
			Token: state[kind],
			Tag:   req.Tag,
			Sort:  s.sortFor(kind, srt, sorted),
		})
		if err != nil {
			return nil, err
		}

		// An under-filled source donates the rest of its budget to the
		// next one so the page stays close to the requested limit.
		leftover = budget - len(result.Items)
		mainItems = append(mainItems, result.Items...)
		next[kind] = result.NextToken
	}

	// Leftover surviving the whole loop goes back to the first source that
	// still has content; exclusion sets and tokens were already advanced,
	// so a second fetch continues cleanly.
	for _, kind := range mainKinds {
		if leftover <= 0 {
			break
		}
		if next[kind] == nil {
			continue
		}

		result, err := s.fetchSource(ctx, visitorId, kind, contract.FetchRequest{
			Mode:  fetchMode,
			Quota: leftover,
			Token: next[kind],
			Tag:   req.Tag,
			Sort:  s.sortFor(kind, srt, sorted),
		})
		if err != nil {
			return nil, err
		}

		leftover -= len(result.Items)
		mainItems = append(mainItems, result.Items...)
		next[kind] = result.NextToken
	}

	shortItems := make([]dto.ContentItem, 0, s.cfg.ShortsShelfSize)
	if s.shortsActive(state) > 0 {
		result, err := s.fetchSource(ctx, visitorId, entity.KindShort, contract.FetchRequest{
			Mode:  contract.ModeSample,
			Quota: s.shortsActive(state),
			Token: state[entity.KindShort],
			Tag:   req.Tag,
		})
		if err != nil {
			return nil, err
		}
		shortItems = result.Items
		next[entity.KindShort] = result.NextToken
	}

	if sorted {
		sortItemsByTuple(mainItems, srt)
	} else {
		quota.Shuffle(mainItems, s.newRng())
	}

	res := &dto.FeedResponse{Video: mainItems, Short: shortItems}
	if !next.Exhausted() {
		encoded, err := cursorcodec.Encode(next)
		if err != nil {
			return nil, err
		}
		res.Cursors = &encoded
	}
	return res, nil
}

// fetchSource runs one fetcher and, in sample mode, wires the exclusion set
// around it: read before the query, write back the ids it produced. Cache
// trouble degrades to no de-duplication.
func (s *feedService) fetchSource(ctx context.Context, visitorId, kind string, req contract.FetchRequest) (*contract.FetchResult, error) {
	key := contract.SessionKey{VisitorId: visitorId, Kind: kind}

	if req.Mode == contract.ModeSample {
		req.ExcludedIds = listSeenSafe(ctx, s.cache, s.log, key)
	}

	result, err := s.fetchers[kind].Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Mode == contract.ModeSample {
		addSeenSafe(ctx, s.cache, s.log, key, idsOf(result.Items))
	}
	return result, nil
}

// mainKinds returns the main-rail sources still active for this cursor
// chain, in fetch order. A kind whose cursor slot went nil is exhausted and
// must not be queried again; in sorted mode playlists only participate when
// they can express the requested tuple.
func (s *feedService) mainKinds(state cursorcodec.State, srt keyset.Sort, sorted bool) []string {
	kinds := make([]string, 0, 2)
	for _, kind := range []string{entity.KindVideo, entity.KindPlaylist} {
		if state != nil && state[kind] == nil {
			continue
		}
		if kind == entity.KindPlaylist && sorted && !playlistSupports(srt) {
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

func (s *feedService) shortsActive(state cursorcodec.State) int {
	if state != nil && state[entity.KindShort] == nil {
		return 0
	}
	return s.cfg.ShortsShelfSize
}

// sortFor maps the requested tuple onto what the kind's collection can
// serve. Playlists have no view counters; they sort by recency when asked
// for anything they cannot express (mainKinds already dropped them for
// sorted feeds in that case).
func (s *feedService) sortFor(kind string, srt keyset.Sort, sorted bool) keyset.Sort {
	if !sorted {
		return nil
	}
	if kind == entity.KindPlaylist && !playlistSupports(srt) {
		return defaultRecencySort()
	}
	return srt
}

// carryToken preserves a source's cursor slot when the page's quota split
// left it unqueried. nil means "stop asking this source", and that verdict
// belongs to the fetcher alone; a source that was never asked stays
// reachable, continuing from its incoming token or from the start.
func carryToken(token *cursorcodec.Token, mode string) *cursorcodec.Token {
	if token != nil {
		return token
	}
	if mode == contract.ModeSample {
		return &cursorcodec.Token{Sampled: true}
	}
	return &cursorcodec.Token{}
}

func playlistSupports(srt keyset.Sort) bool {
	for _, f := range srt {
		switch f.Name {
		case "createdAt", "itemCount", "name", "score":
		default:
			return false
		}
	}
	return true
}
