package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Playlist struct {
	Id           primitive.ObjectID   `bson:"_id,omitempty"`
	Name         string               `bson:"name"`
	Description  string               `bson:"description"`
	OwnerId      primitive.ObjectID   `bson:"ownerId"`
	VideoIds     []primitive.ObjectID `bson:"videoIds"`
	ItemCount    int64                `bson:"itemCount"`
	ThumbnailUrl string               `bson:"thumbnailUrl"`
	Visibility   string               `bson:"visibility"`
	CreatedAt    time.Time            `bson:"createdAt"`

	Score float64 `bson:"score,omitempty"`
}
