package service

import (
	"encoding/json"

	"clipstream-be/pkg/keyset"
)

// feedSortFields is the explicit table of sort fields a client may request
// on the feed, in canonical precedence order. Dispatching through this table
// (instead of trusting arbitrary property names from the query string) is
// what keeps the keyset tuple and the store schema in lockstep; the
// kind-specific projection of each field lives in the fetchers.
var feedSortFields = []string{"createdAt", "views", "likes", "duration"}

// defaultRecencySort is the tuple used whenever a deterministic walk is
// needed but the client did not pick one: newest first.
func defaultRecencySort() keyset.Sort {
	return keyset.Sort{{Name: "createdAt", Direction: keyset.Desc}}
}

// parseSortParam parses a sort query value like {"createdAt":-1}. Unknown
// fields and malformed JSON are ignored, not rejected: an invalid sort falls
// back to the default randomized feed.
func parseSortParam(raw string) keyset.Sort {
	if raw == "" {
		return nil
	}

	var spec map[string]int
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil
	}

	var srt keyset.Sort
	for _, name := range feedSortFields {
		dir, ok := spec[name]
		if !ok {
			continue
		}
		direction := keyset.Desc
		if dir > 0 {
			direction = keyset.Asc
		}
		srt = append(srt, keyset.Field{Name: name, Direction: direction})
	}
	return srt
}
