package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is the public projection of a user account. Account records are
// owned by the auth subsystem.
type Channel struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	DisplayName string             `bson:"displayName"`
	AvatarUrl   string             `bson:"avatarUrl"`
	Subscribers int64              `bson:"subscribers"`
	CreatedAt   time.Time          `bson:"createdAt"`

	Score float64 `bson:"score,omitempty"`
}
