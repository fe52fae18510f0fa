package implementation

import (
	"context"
	"fmt"

	"clipstream-be/internal/entity"
	"clipstream-be/internal/mapper"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/internal/repository/specification"
	"clipstream-be/pkg/cursorcodec"
	"clipstream-be/pkg/keyset"
	"clipstream-be/pkg/relevance"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type playlistFetchRepository struct {
	col *mongo.Collection
}

func NewPlaylistFetchRepository(db *mongo.Database) contract.SourceFetcher {
	return &playlistFetchRepository{col: db.Collection("playlists")}
}

func (r *playlistFetchRepository) Kind() string {
	return entity.KindPlaylist
}

func (r *playlistFetchRepository) Fetch(ctx context.Context, req contract.FetchRequest) (*contract.FetchResult, error) {
	filter, err := r.baseFilter(req)
	if err != nil {
		return nil, err
	}

	if req.Mode == contract.ModeContinuation {
		return r.continuation(ctx, req, filter)
	}
	return r.sample(ctx, req, filter)
}

func (r *playlistFetchRepository) baseFilter(req contract.FetchRequest) (bson.M, error) {
	specs := []specification.Specification{specification.PublicOnly{}}
	if req.Search != "" {
		specs = append(specs, specification.FieldMatches{Field: "name", Query: req.Search})
	}
	if req.OwnerId != "" {
		ownerId, err := primitive.ObjectIDFromHex(req.OwnerId)
		if err != nil {
			return nil, fmt.Errorf("owner id %q: %w", req.OwnerId, err)
		}
		specs = append(specs, specification.OwnedBy{OwnerId: ownerId})
	}
	return specification.Build(specs...), nil
}

func (r *playlistFetchRepository) sample(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	excluded := toObjectIds(req.ExcludedIds)
	playlists, total, err := runSample[entity.Playlist](ctx, r.col, filter, excluded, req.Quota)
	if err != nil {
		return nil, err
	}

	hasMore, token := sampleResult(total, len(excluded), len(playlists))
	return &contract.FetchResult{
		Items:     mapper.PlaylistsToContentItems(playlists),
		HasMore:   hasMore,
		NextToken: token,
	}, nil
}

func (r *playlistFetchRepository) continuation(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	srt := req.Sort
	if len(srt) == 0 {
		srt = keyset.Sort{{Name: "createdAt", Direction: keyset.Desc}}
	}

	var score bson.M
	if req.Search != "" {
		score = relevance.ScoreExpr("name", req.Search)
	}

	after, err := keysetBound(srt, req.Token)
	if err != nil {
		return nil, err
	}

	playlists, total, err := runContinuation[entity.Playlist](ctx, r.col, continuationQuery{
		filter: filter,
		score:  score,
		after:  after,
		sort:   srt,
		quota:  req.Quota,
	})
	if err != nil {
		return nil, err
	}

	hasMore, consumed := continuationResult(total, tokenConsumed(req.Token), len(playlists))

	result := &contract.FetchResult{
		Items:   mapper.PlaylistsToContentItems(playlists),
		HasMore: hasMore,
	}
	if hasMore {
		last := &playlists[len(playlists)-1]
		tuple, err := r.sortTuple(last, srt)
		if err != nil {
			return nil, err
		}
		result.NextToken = &cursorcodec.Token{
			Last:     tuple,
			LastID:   last.Id.Hex(),
			Consumed: consumed,
		}
	}
	return result, nil
}

func (r *playlistFetchRepository) sortTuple(p *entity.Playlist, srt keyset.Sort) ([]cursorcodec.Value, error) {
	tuple := make([]cursorcodec.Value, 0, len(srt))
	for _, f := range srt {
		switch f.Name {
		case "createdAt":
			tuple = append(tuple, cursorcodec.Time(p.CreatedAt))
		case "itemCount":
			tuple = append(tuple, cursorcodec.Number(float64(p.ItemCount)))
		case "score":
			tuple = append(tuple, cursorcodec.Number(p.Score))
		case "name":
			tuple = append(tuple, cursorcodec.String(p.Name))
		default:
			return nil, fmt.Errorf("unsupported playlist sort field %q", f.Name)
		}
	}
	return tuple, nil
}
