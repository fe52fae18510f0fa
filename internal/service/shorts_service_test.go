package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/internal/repository/memory"
	"clipstream-be/pkg/cursorcodec"
)

type fakeVideoRepo struct {
	videos map[string]*entity.Video
	viewed []string
}

func (r *fakeVideoRepo) FindById(_ context.Context, id string) (*entity.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return video, nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	r.viewed = append(r.viewed, id)
	return nil
}

func newTestShortsService(fetcher *fakeFetcher, videos contract.VideoRepository, cache contract.SessionCacheRepository) IShortsService {
	log := logger.NopLogger{}
	return NewShortsService(fetcher, videos, cache, NewSessionStateService(cache, log), testFeedConfig(), log)
}

func TestGetShortsFirstPage(t *testing.T) {
	fetcher := &fakeFetcher{kind: entity.KindShort, items: makeItems(entity.KindShort, 50)}
	cache := memory.NewSessionCacheRepository(time.Hour)
	svc := newTestShortsService(fetcher, &fakeVideoRepo{}, cache)

	res, err := svc.GetShorts(context.Background(), "visitor-1", "", &dto.ShortsQuery{})
	require.NoError(t, err)
	assert.Len(t, res.Data, 10)
	assert.NotNil(t, res.Cursors)
}

func TestGetShortsSeedLeadsFirstPage(t *testing.T) {
	seedObjectId := primitive.NewObjectID()
	seedId := seedObjectId.Hex()
	repo := &fakeVideoRepo{videos: map[string]*entity.Video{
		seedId: {
			Id:         seedObjectId,
			Title:      "seed short",
			Kind:       entity.KindShort,
			Visibility: entity.VisibilityPublic,
		},
	}}

	fetcher := &fakeFetcher{kind: entity.KindShort, items: makeItems(entity.KindShort, 50)}
	cache := memory.NewSessionCacheRepository(time.Hour)
	svc := newTestShortsService(fetcher, repo, cache)
	ctx := context.Background()

	res, err := svc.GetShorts(ctx, "visitor-1", seedId, &dto.ShortsQuery{})
	require.NoError(t, err)
	require.Len(t, res.Data, 10)
	assert.Equal(t, seedId, res.Data[0].Id)

	// The seed joins the exclusion set so it cannot resurface later.
	seen, err := cache.ListSeen(ctx, contract.SessionKey{VisitorId: "visitor-1", Kind: entity.KindShort})
	require.NoError(t, err)
	assert.Contains(t, seen, seedId)

	// Continuation pages ignore the seed entirely.
	require.NotNil(t, res.Cursors)
	res2, err := svc.GetShorts(ctx, "visitor-1", seedId, &dto.ShortsQuery{Cursors: *res.Cursors})
	require.NoError(t, err)
	assert.NotContains(t, collectIds(res2.Data), seedId)
	assert.Len(t, res2.Data, 10)
}

func TestGetShortsSeedMustBePublicShort(t *testing.T) {
	regularId := primitive.NewObjectID()
	privateId := primitive.NewObjectID()
	repo := &fakeVideoRepo{videos: map[string]*entity.Video{
		regularId.Hex(): {Id: regularId, Kind: entity.KindVideo, Visibility: entity.VisibilityPublic},
		privateId.Hex(): {Id: privateId, Kind: entity.KindShort, Visibility: entity.VisibilityPrivate},
	}}

	fetcher := &fakeFetcher{kind: entity.KindShort, items: makeItems(entity.KindShort, 50)}
	cache := memory.NewSessionCacheRepository(time.Hour)
	svc := newTestShortsService(fetcher, repo, cache)

	_, err := svc.GetShorts(context.Background(), "visitor-1", regularId.Hex(), &dto.ShortsQuery{})
	assert.Error(t, err)

	_, err = svc.GetShorts(context.Background(), "visitor-1", privateId.Hex(), &dto.ShortsQuery{})
	assert.Error(t, err)

	_, err = svc.GetShorts(context.Background(), "visitor-1", primitive.NewObjectID().Hex(), &dto.ShortsQuery{})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestGetShortsNoRepeatsUntilExhausted(t *testing.T) {
	fetcher := &fakeFetcher{kind: entity.KindShort, items: makeItems(entity.KindShort, 25)}
	cache := memory.NewSessionCacheRepository(time.Hour)
	svc := newTestShortsService(fetcher, &fakeVideoRepo{}, cache)

	served := map[string]struct{}{}
	cursor := ""
	for page := 0; page < 5; page++ {
		res, err := svc.GetShorts(context.Background(), "visitor-1", "", &dto.ShortsQuery{Cursors: cursor})
		require.NoError(t, err)

		for _, id := range collectIds(res.Data) {
			_, dup := served[id]
			require.Falsef(t, dup, "short %s repeated", id)
			served[id] = struct{}{}
		}

		if res.Cursors == nil {
			break
		}
		cursor = *res.Cursors
	}

	assert.Len(t, served, 25)
}

func TestGetShortsMalformedCursor(t *testing.T) {
	fetcher := &fakeFetcher{kind: entity.KindShort, items: makeItems(entity.KindShort, 5)}
	cache := memory.NewSessionCacheRepository(time.Hour)
	svc := newTestShortsService(fetcher, &fakeVideoRepo{}, cache)

	_, err := svc.GetShorts(context.Background(), "visitor-1", "", &dto.ShortsQuery{Cursors: "@@"})
	assert.ErrorIs(t, err, cursorcodec.ErrBadCursor)
}
