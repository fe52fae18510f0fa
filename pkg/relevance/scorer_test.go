package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScoreExactMatch(t *testing.T) {
	// exact + startsWith + full positional + whole word
	assert.InDelta(t, 150+100+80+50, Score("cat", "cat"), 0.001)
}

func TestScoreCaseInsensitive(t *testing.T) {
	assert.Equal(t, Score("cat", "CAT Videos"), Score("CaT", "cat videos"))
}

func TestScoreOrdering(t *testing.T) {
	// Exact > prefix > whole-word substring > mid-word substring.
	exact := Score("cat", "cat")
	prefix := Score("cat", "cat videos")
	wholeWord := Score("cat", "funny cat videos")
	midWord := Score("cat", "concatenation")

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, wholeWord)
	assert.Greater(t, wholeWord, midWord)
}

func TestScorePositionalBonusDecays(t *testing.T) {
	early := Score("dog", "a dog story of considerable length")
	late := Score("dog", "a considerable story about one dog")
	assert.Greater(t, early, late)
}

func TestScoreWholeWordBonus(t *testing.T) {
	// Same position ratio, one match starts a word, the other does not.
	word := Score("cat", "aa cat") // position 3, len 6
	glued := Score("cat", "aaacat") // position 3, len 6
	assert.InDelta(t, wholeWordBonus, word-glued, 0.001)
}

func TestScoreWholeWordBonusOnlyForLiteralSpace(t *testing.T) {
	// $substrCP in ScoreExpr compares the previous char to " ", so only a
	// literal space earns the bonus; a tab does not.
	spaced := Score("cat", "aa cat")  // position 3, len 6
	tabbed := Score("cat", "aa\tcat") // position 3, len 6
	assert.InDelta(t, wholeWordBonus, spaced-tabbed, 0.001)
	assert.InDelta(t, 80-60*3.0/6.0, tabbed, 0.001)
}

func TestScoreNoMatch(t *testing.T) {
	assert.Zero(t, Score("zebra", "cat videos"))
	assert.Zero(t, Score("", "cat videos"))
	assert.Zero(t, Score("cat", ""))
}

func TestScoreUnicodePositions(t *testing.T) {
	// Positions are code points, not bytes: "né" starts at rune 3 of 7.
	assert.InDelta(t, 80-60*3.0/7.0+50, Score("né", "aa né b"), 0.001)
}

func TestMatchFilter(t *testing.T) {
	filter := MatchFilter("title", " c.t ")
	rx, ok := filter["title"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, `c\.t`, rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestScoreExprShape(t *testing.T) {
	expr := ScoreExpr("title", "Cat")

	add, ok := expr["$add"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, add, 4)

	// The query must be lowercased inside the expression.
	exact := add[0].(bson.M)["$cond"].(bson.A)
	eq := exact[0].(bson.M)["$eq"].(bson.A)
	assert.Equal(t, "cat", eq[1])
}
