package entity

// FeedMode records how a visitor is currently consuming the feed. The two
// modes are mutually exclusive per visitor: random mode de-duplicates
// through exclusion sets, sorted mode through keyset cursors, and the
// exclusion data of one must not leak into the other.
type FeedMode string

const (
	ModeRandom FeedMode = "random"
	ModeSorted FeedMode = "sorted"
)

// VisitorSession lives in the shared cache only, bounded by the rolling
// cookie TTL. It is never written to durable storage.
type VisitorSession struct {
	Id   string   `json:"id"`
	Mode FeedMode `json:"mode"`
}
