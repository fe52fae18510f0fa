package keyset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSortDoc(t *testing.T) {
	s := Sort{
		{Name: "score", Direction: Desc},
		{Name: "views", Direction: Desc},
		{Name: "createdAt", Direction: Desc},
	}

	assert.Equal(t, bson.D{
		{Key: "score", Value: -1},
		{Key: "views", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}, SortDoc(s))
}

func TestSortDocAscendingId(t *testing.T) {
	s := Sort{{Name: "title", Direction: Asc}}
	assert.Equal(t, bson.D{
		{Key: "title", Value: 1},
		{Key: "_id", Value: 1},
	}, SortDoc(s))
}

func TestFilterSingleField(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	s := Sort{{Name: "createdAt", Direction: Desc}}

	filter, err := Filter(s, []interface{}{createdAt}, "last-id")
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$or": []bson.M{
		{"createdAt": bson.M{"$lt": createdAt}},
		{"createdAt": createdAt, "_id": bson.M{"$lt": "last-id"}},
	}}, filter)
}

func TestFilterThreeFieldTuple(t *testing.T) {
	s := Sort{
		{Name: "score", Direction: Desc},
		{Name: "views", Direction: Desc},
		{Name: "createdAt", Direction: Desc},
	}
	createdAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	filter, err := Filter(s, []interface{}{412.5, int64(98000), createdAt}, "last-id")
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$or": []bson.M{
		{"score": bson.M{"$lt": 412.5}},
		{"score": 412.5, "views": bson.M{"$lt": int64(98000)}},
		{"score": 412.5, "views": int64(98000), "createdAt": bson.M{"$lt": createdAt}},
		{"score": 412.5, "views": int64(98000), "createdAt": createdAt, "_id": bson.M{"$lt": "last-id"}},
	}}, filter)
}

func TestFilterAscendingUsesGt(t *testing.T) {
	s := Sort{{Name: "title", Direction: Asc}}

	filter, err := Filter(s, []interface{}{"m"}, "last-id")
	require.NoError(t, err)

	assert.Equal(t, bson.M{"$or": []bson.M{
		{"title": bson.M{"$gt": "m"}},
		{"title": "m", "_id": bson.M{"$gt": "last-id"}},
	}}, filter)
}

func TestFilterTupleArityMismatch(t *testing.T) {
	s := Sort{
		{Name: "score", Direction: Desc},
		{Name: "views", Direction: Desc},
	}

	_, err := Filter(s, []interface{}{1.0}, "last-id")
	assert.Error(t, err)
}

func TestFilterEmptySortFallsBackToIdOnly(t *testing.T) {
	filter, err := Filter(Sort{}, nil, "last-id")
	require.NoError(t, err)

	assert.Equal(t, bson.M{"_id": bson.M{"$lt": "last-id"}}, filter)
}
