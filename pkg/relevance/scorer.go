// Package relevance ranks free-text search matches against a title or name
// field. The same formula exists twice: Score for in-process ranking and
// tests, ScoreExpr as an aggregation expression so the store can compute the
// score per document and keyset continuation can range over it.
package relevance

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	exactBonus      = 150.0
	startsWithBonus = 100.0
	positionalBase  = 80.0
	positionalSpan  = 60.0
	wholeWordBonus  = 50.0
)

// Score computes the match quality of query against title, case-insensitive.
// Returns 0 when the query does not occur at all; candidates are expected to
// be pre-filtered by MatchFilter so the scorer only sees matches.
func Score(query, title string) float64 {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	t := []rune(strings.ToLower(title))
	if len(q) == 0 || len(t) == 0 {
		return 0
	}

	position := indexRunes(t, q)
	if position < 0 {
		return 0
	}

	// Earlier matches are worth more, proportional to where in the title
	// the match begins.
	score := positionalBase - positionalSpan*float64(position)/float64(len(t))

	if string(t) == string(q) {
		score += exactBonus
	}
	if position == 0 {
		score += startsWithBonus
	}
	// Literal space only, matching the $substrCP comparison in ScoreExpr:
	// the serving path ranks on the store-computed score, so both
	// implementations must agree on every input.
	if position == 0 || t[position-1] == ' ' {
		score += wholeWordBonus
	}

	return score
}

// MatchFilter is the regex pre-filter applied before scoring: a
// case-insensitive literal-substring match on the given field.
func MatchFilter(field, query string) bson.M {
	pattern := regexp.QuoteMeta(strings.TrimSpace(query))
	return bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}}
}

// ScoreExpr builds the aggregation expression equivalent of Score over a
// document field, for use in an $addFields stage. The stage only runs on
// documents that passed MatchFilter, so the index lookup always finds the
// query.
func ScoreExpr(field, query string) bson.M {
	q := strings.ToLower(strings.TrimSpace(query))
	lower := bson.M{"$toLower": "$" + field}
	position := bson.M{"$indexOfCP": bson.A{lower, q}}
	length := bson.M{"$strLenCP": lower}

	exact := bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{lower, q}},
		exactBonus,
		0,
	}}

	startsWith := bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{position, 0}},
		startsWithBonus,
		0,
	}}

	positional := bson.M{"$subtract": bson.A{
		positionalBase,
		bson.M{"$multiply": bson.A{
			positionalSpan,
			bson.M{"$divide": bson.A{position, length}},
		}},
	}}

	previousChar := bson.M{"$substrCP": bson.A{
		lower,
		bson.M{"$subtract": bson.A{position, 1}},
		1,
	}}
	wholeWord := bson.M{"$cond": bson.A{
		bson.M{"$or": bson.A{
			bson.M{"$eq": bson.A{position, 0}},
			bson.M{"$eq": bson.A{previousChar, " "}},
		}},
		wholeWordBonus,
		0,
	}}

	return bson.M{"$add": bson.A{exact, startsWith, positional, wholeWord}}
}

// indexRunes returns the rune offset of the first occurrence of needle in
// haystack, matching the store's code-point based $indexOfCP.
func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
