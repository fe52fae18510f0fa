package contract

import (
	"context"

	"clipstream-be/internal/dto"
	"clipstream-be/pkg/cursorcodec"
	"clipstream-be/pkg/keyset"
)

const (
	// ModeSample: random page, de-duplicated through the exclusion set.
	ModeSample = "sample"
	// ModeContinuation: deterministic page, keyset-bounded by the cursor.
	ModeContinuation = "continuation"
)

type FetchRequest struct {
	Mode  string
	Quota int

	// Continuation state for this source, nil on the first page.
	Token *cursorcodec.Token

	// Ids already shown to the visitor (sample mode only).
	ExcludedIds []string

	// Optional filters.
	Search  string
	Tag     string
	OwnerId string

	// Sort tuple for continuation mode; the fetcher falls back to
	// newest-first when empty.
	Sort keyset.Sort
}

type FetchResult struct {
	Items   []dto.ContentItem
	HasMore bool

	// NextToken is nil exactly when HasMore is false; callers must stop
	// querying this source once its slot is nil.
	NextToken *cursorcodec.Token
}

// SourceFetcher serves one content kind out of the document store.
type SourceFetcher interface {
	Kind() string
	Fetch(ctx context.Context, req FetchRequest) (*FetchResult, error)
}
