package specification

import "go.mongodb.org/mongo-driver/bson"

// Specification defines the interface for query specifications. Each one
// contributes its conditions to a $match filter.
type Specification interface {
	Apply(filter bson.M)
}

// Build combines specifications into a single filter document.
func Build(specs ...Specification) bson.M {
	filter := bson.M{}
	for _, s := range specs {
		s.Apply(filter)
	}
	return filter
}
