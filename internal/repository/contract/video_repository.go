package contract

import (
	"context"

	"clipstream-be/internal/entity"
)

type VideoRepository interface {
	FindById(ctx context.Context, id string) (*entity.Video, error)
	IncrementViews(ctx context.Context, id string) error
}

type ChannelRepository interface {
	FindById(ctx context.Context, id string) (*entity.Channel, error)
}
