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
	"go.mongodb.org/mongo-driver/mongo"
)

type channelFetchRepository struct {
	col *mongo.Collection
}

func NewChannelFetchRepository(db *mongo.Database) contract.SourceFetcher {
	return &channelFetchRepository{col: db.Collection("users")}
}

func (r *channelFetchRepository) Kind() string {
	return entity.KindChannel
}

func (r *channelFetchRepository) Fetch(ctx context.Context, req contract.FetchRequest) (*contract.FetchResult, error) {
	filter := bson.M{}
	if req.Search != "" {
		filter = specification.Build(specification.FieldMatches{Field: "username", Query: req.Search})
	}

	if req.Mode == contract.ModeContinuation {
		return r.continuation(ctx, req, filter)
	}
	return r.sample(ctx, req, filter)
}

func (r *channelFetchRepository) sample(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	excluded := toObjectIds(req.ExcludedIds)
	channels, total, err := runSample[entity.Channel](ctx, r.col, filter, excluded, req.Quota)
	if err != nil {
		return nil, err
	}

	hasMore, token := sampleResult(total, len(excluded), len(channels))
	return &contract.FetchResult{
		Items:     mapper.ChannelsToContentItems(channels),
		HasMore:   hasMore,
		NextToken: token,
	}, nil
}

func (r *channelFetchRepository) continuation(ctx context.Context, req contract.FetchRequest, filter bson.M) (*contract.FetchResult, error) {
	srt := req.Sort
	if len(srt) == 0 {
		srt = keyset.Sort{{Name: "createdAt", Direction: keyset.Desc}}
	}

	var score bson.M
	if req.Search != "" {
		score = relevance.ScoreExpr("username", req.Search)
	}

	after, err := keysetBound(srt, req.Token)
	if err != nil {
		return nil, err
	}

	channels, total, err := runContinuation[entity.Channel](ctx, r.col, continuationQuery{
		filter: filter,
		score:  score,
		after:  after,
		sort:   srt,
		quota:  req.Quota,
	})
	if err != nil {
		return nil, err
	}

	hasMore, consumed := continuationResult(total, tokenConsumed(req.Token), len(channels))

	result := &contract.FetchResult{
		Items:   mapper.ChannelsToContentItems(channels),
		HasMore: hasMore,
	}
	if hasMore {
		last := &channels[len(channels)-1]
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

func (r *channelFetchRepository) sortTuple(c *entity.Channel, srt keyset.Sort) ([]cursorcodec.Value, error) {
	tuple := make([]cursorcodec.Value, 0, len(srt))
	for _, f := range srt {
		switch f.Name {
		case "createdAt":
			tuple = append(tuple, cursorcodec.Time(c.CreatedAt))
		case "subscribers":
			tuple = append(tuple, cursorcodec.Number(float64(c.Subscribers)))
		case "score":
			tuple = append(tuple, cursorcodec.Number(c.Score))
		case "username":
			tuple = append(tuple, cursorcodec.String(c.Username))
		default:
			return nil, fmt.Errorf("unsupported channel sort field %q", f.Name)
		}
	}
	return tuple, nil
}
