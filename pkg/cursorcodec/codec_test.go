package cursorcodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name  string
		state State
	}{
		{
			name: "sorted continuation with full tuple",
			state: State{
				"video": {
					Last:     []Value{Number(412.5), Number(98000), Time(createdAt)},
					LastID:   "65f1c0de1234567890abcdef",
					Consumed: 32,
				},
			},
		},
		{
			name: "sample token with remaining estimate",
			state: State{
				"short": {Sampled: true, Remaining: 118},
			},
		},
		{
			name: "mixed slots including exhausted source",
			state: State{
				"video":    {Last: []Value{Time(createdAt)}, LastID: "65f1c0de1234567890abcdef", Consumed: 16},
				"playlist": nil,
				"channel":  {Sampled: true, Remaining: 3},
			},
		},
		{
			name: "string tuple values survive",
			state: State{
				"channel": {Last: []Value{String("zebra")}, LastID: "65f1c0de1234567890abcd00", Consumed: 4},
			},
		},
		{
			name:  "empty state",
			state: State{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.state)
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.state, decoded)
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	valid, err := Encode(State{"video": {Sampled: true, Remaining: 10}})
	require.NoError(t, err)

	// Flip one byte in the middle of a valid cursor.
	corrupted := []byte(valid)
	corrupted[len(corrupted)/2] ^= 0x41

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not zlib", "aGVsbG8gd29ybGQ"},
		{"flipped byte", string(corrupted)},
		{"truncated cursor", valid[:len(valid)-6]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			assert.ErrorIs(t, err, ErrBadCursor)
		})
	}
}

func TestStateExhausted(t *testing.T) {
	assert.True(t, State{}.Exhausted())
	assert.True(t, State{"video": nil, "playlist": nil}.Exhausted())
	assert.False(t, State{"video": nil, "playlist": {Sampled: true, Remaining: 1}}.Exhausted())
}

func TestStateHasSorted(t *testing.T) {
	assert.False(t, State{"video": {Sampled: true, Remaining: 5}}.HasSorted())
	assert.False(t, State{"video": nil}.HasSorted())
	assert.True(t, State{
		"video": {Last: []Value{Number(1)}, LastID: "a", Consumed: 1},
	}.HasSorted())
}

func TestValueInterface(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "abc", String("abc").Interface())
	assert.Equal(t, 42.0, Number(42).Interface())
	assert.Equal(t, ts, Time(ts).Interface())
	assert.Nil(t, Value{}.Interface())
}
