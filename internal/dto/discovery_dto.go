package dto

import (
	"time"
)

// ContentItem is the read-only projection every discovery endpoint returns,
// regardless of which collection the record came from. Kind-specific fields
// are omitted when empty.
type ContentItem struct {
	Id           string    `json:"id"`
	Type         string    `json:"type"` // video | short | playlist | channel
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailUrl string    `json:"thumbnail_url,omitempty"`
	StreamUrl    string    `json:"stream_url,omitempty"`
	AvatarUrl    string    `json:"avatar_url,omitempty"`
	OwnerId      string    `json:"owner_id,omitempty"`
	Views        int64     `json:"views,omitempty"`
	Likes        int64     `json:"likes,omitempty"`
	Duration     float64   `json:"duration,omitempty"`
	ItemCount    int64     `json:"item_count,omitempty"`
	Subscribers  int64     `json:"subscribers,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// Ranking signals used for cross-source merging; not part of the wire
	// response.
	Score float64 `json:"-"`
}

// Popularity is the kind-specific secondary ranking field.
func (c ContentItem) Popularity() int64 {
	switch c.Type {
	case "playlist":
		return c.ItemCount
	case "channel":
		return c.Subscribers
	default:
		return c.Views
	}
}

type FeedQuery struct {
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Sort    string `query:"sort"`
	Tag     string `query:"tag"`
	Cursors string `query:"cursors"`
}

type FeedResponse struct {
	Video   []ContentItem `json:"video"`
	Short   []ContentItem `json:"short"`
	Cursors *string       `json:"cursors"`
}

type SearchQuery struct {
	Search  string `query:"search"`
	Type    string `query:"type"`
	Tag     string `query:"tag"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Cursors string `query:"cursors"`
}

type SearchResponse struct {
	Data    []ContentItem `json:"data"`
	Cursors *string       `json:"cursors"`
}

type ShortsQuery struct {
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Cursors string `query:"cursors"`
}

type ShortsResponse struct {
	Data    []ContentItem `json:"data"`
	Cursors *string       `json:"cursors"`
}
