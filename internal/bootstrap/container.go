package bootstrap

import (
	"clipstream-be/internal/config"
	"clipstream-be/internal/controller"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/internal/repository/implementation"
	"clipstream-be/internal/repository/memory"
	"clipstream-be/internal/service"

	pktNats "clipstream-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Container struct {
	// Controllers
	FeedController    controller.IFeedController
	SearchController  controller.ISearchController
	ShortsController  controller.IShortsController
	VideoController   controller.IVideoController
	ChannelController controller.IChannelController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *mongo.Database, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror is optional: the service stays up without it, views just
	// stop flowing to external consumers.
	var natsPublisher *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		publisher, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, view events will not be mirrored", map[string]interface{}{"error": err.Error()})
		} else {
			natsPublisher = publisher
		}
	}

	// 3. Repositories
	sessionCache := newSessionCache(cfg, sysLogger)

	videoFetcher := implementation.NewVideoFetchRepository(db)
	shortFetcher := implementation.NewShortFetchRepository(db)
	playlistFetcher := implementation.NewPlaylistFetchRepository(db)
	channelFetcher := implementation.NewChannelFetchRepository(db)
	videoRepository := implementation.NewVideoRepository(db)
	channelRepository := implementation.NewChannelRepository(db)

	// 4. Services
	sessionState := service.NewSessionStateService(sessionCache, sysLogger)
	publisherService := service.NewPublisherService(pubSub, cfg.Feed.ViewedTopic)

	feedService := service.NewFeedService(videoFetcher, shortFetcher, playlistFetcher, sessionCache, sessionState, cfg.Feed, sysLogger)
	searchService := service.NewSearchService(videoFetcher, playlistFetcher, channelFetcher, cfg.Feed, sysLogger)
	shortsService := service.NewShortsService(shortFetcher, videoRepository, sessionCache, sessionState, cfg.Feed, sysLogger)
	videoService := service.NewVideoService(videoRepository, channelRepository, videoFetcher, publisherService, cfg.Feed, sysLogger)

	consumerService := service.NewConsumerService(pubSub, cfg.Feed.ViewedTopic, videoRepository, natsPublisher, sysLogger)

	// 5. Controllers
	return &Container{
		FeedController:    controller.NewFeedController(feedService),
		SearchController:  controller.NewSearchController(searchService),
		ShortsController:  controller.NewShortsController(shortsService),
		VideoController:   controller.NewVideoController(videoService),
		ChannelController: controller.NewChannelController(videoService),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}
}

// newSessionCache picks the exclusion-set backend: Redis when configured
// (shared across instances), otherwise an in-process store good enough for
// a single node and for development.
func newSessionCache(cfg *config.Config, log logger.ILogger) contract.SessionCacheRepository {
	if cfg.App.RedisURL == "" {
		log.Info("Bootstrap", "REDIS_URL not set, using in-process session cache", nil)
		return memory.NewSessionCacheRepository(cfg.Feed.SessionTTL)
	}

	opts, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "Invalid REDIS_URL, falling back to in-process session cache", map[string]interface{}{"error": err.Error()})
		return memory.NewSessionCacheRepository(cfg.Feed.SessionTTL)
	}

	return implementation.NewRedisSessionCacheRepository(redis.NewClient(opts), cfg.Feed.SessionTTL)
}
