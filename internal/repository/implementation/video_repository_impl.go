package implementation

import (
	"context"
	"fmt"

	"clipstream-be/internal/entity"
	"clipstream-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type videoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) contract.VideoRepository {
	return &videoRepository{col: db.Collection("videos")}
}

func (r *videoRepository) FindById(ctx context.Context, id string) (*entity.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never name a document.
		return nil, fmt.Errorf("video id %q: %w", id, mongo.ErrNoDocuments)
	}

	var video entity.Video
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("video id %q: %w", id, err)
	}

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

type channelRepository struct {
	col *mongo.Collection
}

func NewChannelRepository(db *mongo.Database) contract.ChannelRepository {
	return &channelRepository{col: db.Collection("users")}
}

func (r *channelRepository) FindById(ctx context.Context, id string) (*entity.Channel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("channel id %q: %w", id, mongo.ErrNoDocuments)
	}

	var channel entity.Channel
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}
