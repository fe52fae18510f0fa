package specification

import (
	"clipstream-be/pkg/relevance"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ByKind filters videos vs shorts within the shared collection.
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(filter bson.M) {
	filter["kind"] = s.Kind
}

// PublicOnly keeps records any visitor may see.
type PublicOnly struct{}

func (s PublicOnly) Apply(filter bson.M) {
	filter["visibility"] = "public"
}

// HasTag matches records tagged with the given tag.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(filter bson.M) {
	filter["tags"] = s.Tag
}

// OwnedBy filters by the owning channel.
type OwnedBy struct {
	OwnerId primitive.ObjectID
}

func (s OwnedBy) Apply(filter bson.M) {
	filter["ownerId"] = s.OwnerId
}

// FieldMatches is the case-insensitive substring pre-filter for free-text
// search; the relevance scorer only runs on records that pass it.
type FieldMatches struct {
	Field string
	Query string
}

func (s FieldMatches) Apply(filter bson.M) {
	for k, v := range relevance.MatchFilter(s.Field, s.Query) {
		filter[k] = v
	}
}

// ExcludeIds drops records already shown to the visitor.
type ExcludeIds struct {
	Ids []primitive.ObjectID
}

func (s ExcludeIds) Apply(filter bson.M) {
	if len(s.Ids) == 0 {
		return
	}
	filter["_id"] = bson.M{"$nin": s.Ids}
}
