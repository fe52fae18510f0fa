package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	KindVideo    = "video"
	KindShort    = "short"
	KindPlaylist = "playlist"
	KindChannel  = "channel"
)

const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
)

// Video covers both regular videos and shorts; shorts are videos with
// Kind == KindShort. Content records are owned by the upload/transcoding
// subsystem; this service only reads them and bumps counters.
type Video struct {
	Id           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Kind         string             `bson:"kind"`
	Tags         []string           `bson:"tags"`
	OwnerId      primitive.ObjectID `bson:"ownerId"`
	Views        int64              `bson:"views"`
	Likes        int64              `bson:"likes"`
	Duration     float64            `bson:"duration"`
	ThumbnailUrl string             `bson:"thumbnailUrl"`
	StreamUrl    string             `bson:"streamUrl"` // HLS manifest served by the delivery subsystem
	Visibility   string             `bson:"visibility"`
	CreatedAt    time.Time          `bson:"createdAt"`

	// Computed by the search aggregation pipeline, never stored.
	Score float64 `bson:"score,omitempty"`
}
