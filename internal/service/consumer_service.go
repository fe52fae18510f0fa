package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"clipstream-be/internal/dto"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/events"
	pktNats "clipstream-be/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains view events off the in-process channel, bumps the
// counter in the document store and mirrors the event to NATS so external
// systems (analytics, recommendations) see it too.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	videos    contract.VideoRepository
	nats      *pktNats.Publisher
	log       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	videos contract.VideoRepository,
	natsPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		videos:    videos,
		nats:      natsPublisher,
		log:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.VideoViewedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("ConsumerService", "Failed to unmarshal view message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed payloads never become valid, drop them
		return
	}

	if err := cs.videos.IncrementViews(ctx, payload.VideoId); err != nil {
		cs.log.Error("ConsumerService", "Failed to increment views", map[string]interface{}{
			"videoId": payload.VideoId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.nats != nil {
		event := events.NewVideoViewed(payload.VideoId, payload.VisitorId)
		if err := cs.nats.Publish(ctx, event); err != nil {
			// The counter is already bumped; the mirror is best-effort.
			cs.log.Error("ConsumerService", "Failed to mirror view event to NATS", map[string]interface{}{
				"videoId": payload.VideoId,
				"error":   err.Error(),
			})
		}
	}

	cs.log.Info("ConsumerService", "✅ View recorded", map[string]interface{}{"videoId": payload.VideoId})
	msg.Ack()
}
