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

// videoFetchRepository serves the video and short kinds out of the shared
// videos collection; the kind filter keeps the two sources independent.
type videoFetchRepository struct {
	col  *mongo.Collection
	kind string
}

func NewVideoFetchRepository(db *mongo.Database) contract.SourceFetcher {
	return &videoFetchRepository{col: db.Collection("videos"), kind: entity.KindVideo}
}

func NewShortFetchRepository(db *mongo.Database) contract.SourceFetcher {
	return &videoFetchRepository{col: db.Collection("videos"), kind: entity.KindShort}
}

func (r *videoFetchRepository) Kind() string {
	return r.kind
}

func (r *videoFetchRepository) Fetch(ctx context.Context, req contract.FetchRequest) (*contract.FetchResult, error) {
	filter, err := r.baseFilter(req)
	if err != nil {
		return nil, err
	}

	if req.Mode == contract.ModeContinuation {
		return r.continuation(ctx, req, filter)
	}
	return r.sample(ctx, req, filter)
}

func (r *videoFetchRepository) baseFilter(req contract.FetchRequest) (bson.M, error) {
	specs := []specification.Specification{
		specification.PublicOnly{},
		specification.ByKind{Kind: r.kind},
	}
	if req.Tag != "" {
		specs = append(specs, specification.HasTag{Tag: req.Tag})
	}
	if req.Search != "" {
		specs = append(specs, specification.FieldMatches{Field: "title", Query: req.Search})
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

func (r *videoFetchRepository) sample(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	excluded := toObjectIds(req.ExcludedIds)
	videos, total, err := runSample[entity.Video](ctx, r.col, filter, excluded, req.Quota)
	if err != nil {
		return nil, err
	}

	hasMore, token := sampleResult(total, len(excluded), len(videos))
	return &contract.FetchResult{
		Items:     mapper.VideosToContentItems(videos),
		HasMore:   hasMore,
		NextToken: token,
	}, nil
}

func (r *videoFetchRepository) continuation(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	srt := req.Sort
	if len(srt) == 0 {
		srt = keyset.Sort{{Name: "createdAt", Direction: keyset.Desc}}
	}

	var score bson.M
	if req.Search != "" {
		score = relevance.ScoreExpr("title", req.Search)
	}

	after, err := keysetBound(srt, req.Token)
	if err != nil {
		return nil, err
	}

	videos, total, err := runContinuation[entity.Video](ctx, r.col, continuationQuery{
		filter: filter,
		score:  score,
		after:  after,
		sort:   srt,
		quota:  req.Quota,
	})
	if err != nil {
		return nil, err
	}

	hasMore, consumed := continuationResult(total, tokenConsumed(req.Token), len(videos))

	result := &contract.FetchResult{
		Items:   mapper.VideosToContentItems(videos),
		HasMore: hasMore,
	}
	if hasMore {
		last := &videos[len(videos)-1]
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

func (r *videoFetchRepository) sortTuple(v *entity.Video, srt keyset.Sort) ([]cursorcodec.Value, error) {
	tuple := make([]cursorcodec.Value, 0, len(srt))
	for _, f := range srt {
		switch f.Name {
		case "createdAt":
			tuple = append(tuple, cursorcodec.Time(v.CreatedAt))
		case "views":
			tuple = append(tuple, cursorcodec.Number(float64(v.Views)))
		case "likes":
			tuple = append(tuple, cursorcodec.Number(float64(v.Likes)))
		case "duration":
			tuple = append(tuple, cursorcodec.Number(v.Duration))
		case "score":
			tuple = append(tuple, cursorcodec.Number(v.Score))
		case "title":
			tuple = append(tuple, cursorcodec.String(v.Title))
		default:
			return nil, fmt.Errorf("unsupported video sort field %q", f.Name)
		}
	}
	return tuple, nil
}
