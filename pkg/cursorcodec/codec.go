// Package cursorcodec serializes opaque feed-continuation cursors.
//
// A cursor is a flat mapping from content-kind name to a continuation token
// (or nil once that source is exhausted). The codec is content-agnostic: it
// does not know what the kinds mean, only how to round-trip the mapping
// through a compact, URL-safe string.
package cursorcodec

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrBadCursor marks a cursor string that was not produced by Encode.
// Absence of a cursor is NOT this error; callers treat an empty string as
// "first page" before ever calling Decode.
var ErrBadCursor = errors.New("malformed cursor")

// Value is one element of a sorted-continuation tie-break tuple. Exactly one
// field is set; the wrapper keeps types stable across a JSON round-trip
// (plain interface{} would collapse times and numbers into strings/floats).
type Value struct {
	Str  *string    `json:"s,omitempty"`
	Num  *float64   `json:"n,omitempty"`
	Time *time.Time `json:"d,omitempty"`
}

func String(v string) Value { return Value{Str: &v} }

func Number(v float64) Value { return Value{Num: &v} }

func Time(v time.Time) Value { t := v.UTC(); return Value{Time: &t} }

// Interface unwraps the value for query building.
func (v Value) Interface() interface{} {
	switch {
	case v.Str != nil:
		return *v.Str
	case v.Num != nil:
		return *v.Num
	case v.Time != nil:
		return *v.Time
	}
	return nil
}

// Token is the per-source continuation state.
//
// Sorted fetch: Last holds the ordered tie-break tuple of the last emitted
// row, LastID its identifier, Consumed the number of rows already emitted on
// this cursor chain.
//
// Sampled fetch: Sampled is true and Remaining carries the estimate of rows
// the source still holds; de-duplication happens through the exclusion set
// store, not through the token.
type Token struct {
	Last      []Value `json:"last,omitempty"`
	LastID    string  `json:"lastId,omitempty"`
	Consumed  int     `json:"consumed,omitempty"`
	Sampled   bool    `json:"sampled,omitempty"`
	Remaining int     `json:"remaining,omitempty"`
}

// Sorted reports whether the token continues a deterministic (keyset) fetch.
func (t *Token) Sorted() bool {
	return t != nil && !t.Sampled
}

// State maps content-kind name to continuation token. A nil entry means the
// source is exhausted and must not be queried again on this cursor chain.
type State map[string]*Token

// Exhausted reports whether every slot is nil.
func (s State) Exhausted() bool {
	for _, token := range s {
		if token != nil {
			return false
		}
	}
	return true
}

// HasSorted reports whether any slot carries a sorted-continuation token.
func (s State) HasSorted() bool {
	for _, token := range s {
		if token.Sorted() {
			return true
		}
	}
	return false
}

// Encode serializes the state: JSON, zlib, base64 (raw URL alphabet).
func Encode(s State) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode is the exact inverse of Encode. Any input not produced by Encode
// fails with ErrBadCursor; it never silently truncates.
func Decode(encoded string) (State, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty input", ErrBadCursor)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		// Zlib checksum failures surface here, after partial reads.
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}

	return state, nil
}
