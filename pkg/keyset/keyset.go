// Package keyset builds strict-lexicographic continuation predicates for
// cursor pagination over an ordered tuple of sort fields.
//
// Given a sort such as (score desc, views desc, createdAt desc) plus the
// trailing _id tie-break, the filter for "strictly after the last seen row"
// is the disjunction:
//
//	score < s
//	OR (score == s AND views < v)
//	OR (score == s AND views == v AND createdAt < c)
//	OR (score == s AND views == v AND createdAt == c AND _id < id)
//
// Every endpoint paginating deterministically goes through this package so
// the tuple and the predicate can never drift apart.
package keyset

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

func (d Direction) operator() string {
	if d == Asc {
		return "$gt"
	}
	return "$lt"
}

// Field is one component of the sort tuple.
type Field struct {
	Name      string
	Direction Direction
}

// Sort is the ordered tuple of visible sort fields. The _id tie-break is
// implicit and always appended by this package.
type Sort []Field

// SortDoc renders the deterministic sort document, _id tie-break included.
// The identifier inherits the direction of the primary field so continuation
// walks the same way the page is ordered.
func SortDoc(s Sort) bson.D {
	doc := make(bson.D, 0, len(s)+1)
	for _, f := range s {
		doc = append(doc, bson.E{Key: f.Name, Value: int(f.Direction)})
	}
	doc = append(doc, bson.E{Key: "_id", Value: int(idDirection(s))})
	return doc
}

// Filter builds the strict-after disjunction for the tuple values of the
// last emitted row. len(last) must equal len(s); lastID is the raw identifier
// value (an ObjectID for store-backed sources).
func Filter(s Sort, last []interface{}, lastID interface{}) (bson.M, error) {
	if len(last) != len(s) {
		return nil, fmt.Errorf("keyset: %d tuple values for %d sort fields", len(last), len(s))
	}

	clauses := make([]bson.M, 0, len(s)+1)
	for i, f := range s {
		clause := bson.M{}
		for j := 0; j < i; j++ {
			clause[s[j].Name] = last[j]
		}
		clause[f.Name] = bson.M{f.Direction.operator(): last[i]}
		clauses = append(clauses, clause)
	}

	// Full-equality clause broken only by the identifier.
	tie := bson.M{}
	for j := range s {
		tie[s[j].Name] = last[j]
	}
	tie["_id"] = bson.M{idDirection(s).operator(): lastID}
	clauses = append(clauses, tie)

	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return bson.M{"$or": clauses}, nil
}

// IdAscending reports whether the implicit _id tie-break runs ascending,
// for callers re-sorting merged pages in memory.
func (s Sort) IdAscending() bool {
	return idDirection(s) == Asc
}

func idDirection(s Sort) Direction {
	if len(s) == 0 {
		return Desc
	}
	return s[0].Direction
}
