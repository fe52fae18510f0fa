package implementation

import (
	"context"
	"fmt"

	"clipstream-be/internal/repository/specification"
	"clipstream-be/pkg/cursorcodec"
	"clipstream-be/pkg/keyset"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// toObjectIds converts exclusion-set members back to ObjectIDs. The set is
// written by this service, but cache content is not trusted blindly: entries
// that fail to parse are skipped since they can only ever narrow a sample.
func toObjectIds(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}

// runSample counts the records matching filter, then draws a uniform random
// sample of size quota among those not already excluded.
func runSample[T any](ctx context.Context, col *mongo.Collection, filter bson.M, excluded []primitive.ObjectID, quota int) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}

	match := filter
	if len(excluded) > 0 {
		// The base filter is shared with the count above; exclusions go
		// into a copy.
		match = make(bson.M, len(filter)+1)
		for k, v := range filter {
			match[k] = v
		}
		specification.ExcludeIds{Ids: excluded}.Apply(match)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sample", Value: bson.M{"size": quota}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("sample %s: %w", col.Name(), err)
	}
	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("sample %s: %w", col.Name(), err)
	}

	return items, total, nil
}

type continuationQuery struct {
	filter bson.M     // base $match
	score  bson.M     // optional $addFields expression, computed before the keyset bound
	after  bson.M     // optional keyset bound from the cursor token
	sort   keyset.Sort
	quota  int
}

// runContinuation executes the deterministic page pipeline and returns the
// total count of rows matching the base filter for has-more math.
func runContinuation[T any](ctx context.Context, col *mongo.Collection, q continuationQuery) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, q.filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: q.filter}}}
	if q.score != nil {
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.M{"score": q.score}}})
	}
	if q.after != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: q.after}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: keyset.SortDoc(q.sort)}},
		bson.D{{Key: "$limit", Value: q.quota}},
	)

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregate %s: %w", col.Name(), err)
	}
	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("aggregate %s: %w", col.Name(), err)
	}

	return items, total, nil
}

// keysetBound translates the cursor token into the strict-after filter.
func keysetBound(srt keyset.Sort, token *cursorcodec.Token) (bson.M, error) {
	if token == nil || len(token.Last) == 0 {
		return nil, nil
	}

	lastID, err := primitive.ObjectIDFromHex(token.LastID)
	if err != nil {
		// The envelope decoded but the token content is garbage.
		return nil, fmt.Errorf("%w: last id %q", cursorcodec.ErrBadCursor, token.LastID)
	}

	values := make([]interface{}, 0, len(token.Last))
	for _, v := range token.Last {
		values = append(values, v.Interface())
	}

	bound, err := keyset.Filter(srt, values, lastID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cursorcodec.ErrBadCursor, err)
	}
	return bound, nil
}

// sampleResult packages the sample-mode has-more math shared by every
// fetcher: remaining = total - excluded - returned, floored at zero.
func sampleResult(total int64, excludedCount, returned int) (bool, *cursorcodec.Token) {
	remaining := total - int64(excludedCount) - int64(returned)
	if remaining <= 0 {
		return false, nil
	}
	return true, &cursorcodec.Token{Sampled: true, Remaining: int(remaining)}
}

// continuationResult computes the sorted-mode has-more state. A page that
// came back empty always terminates the chain, even if counts drifted while
// paginating.
func continuationResult(total int64, consumed, returned int) (bool, int) {
	if returned == 0 {
		return false, consumed
	}
	newConsumed := consumed + returned
	return total > int64(newConsumed), newConsumed
}

func tokenConsumed(t *cursorcodec.Token) int {
	if t == nil {
		return 0
	}
	return t.Consumed
}
