package service

import (
	"context"
	"encoding/json"

	"clipstream-be/internal/config"
	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/mapper"
	"clipstream-be/internal/pkg/logger"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/cursorcodec"
)

type IVideoService interface {
	GetDetail(ctx context.Context, visitorId, videoId string) (*dto.VideoDetailResponse, error)
	GetChannelVideos(ctx context.Context, channelId string, req *dto.ChannelVideosQuery) (*dto.ChannelVideosResponse, error)
}

type videoService struct {
	videos       contract.VideoRepository
	channels     contract.ChannelRepository
	videoFetcher contract.SourceFetcher
	publisher    IPublisherService
	cfg          config.FeedConfig
	log          logger.ILogger
}

func NewVideoService(
	videos contract.VideoRepository,
	channels contract.ChannelRepository,
	videoFetcher contract.SourceFetcher,
	publisher IPublisherService,
	cfg config.FeedConfig,
	log logger.ILogger,
) IVideoService {
	return &videoService{
		videos:       videos,
		channels:     channels,
		videoFetcher: videoFetcher,
		publisher:    publisher,
		cfg:          cfg,
		log:          log,
	}
}

// GetDetail loads one video, queues a view event and attaches a small rail
// of related content sampled by the video's first tag.
func (s *videoService) GetDetail(ctx context.Context, visitorId, videoId string) (*dto.VideoDetailResponse, error) {
	video, err := s.videos.FindById(ctx, videoId)
	if err != nil {
		return nil, err
	}

	s.publishViewed(ctx, videoId, visitorId)

	tag := ""
	if len(video.Tags) > 0 {
		tag = video.Tags[0]
	}

	related, err := s.videoFetcher.Fetch(ctx, contract.FetchRequest{
		Mode:        contract.ModeSample,
		Quota:       s.cfg.RelatedPageSize,
		ExcludedIds: []string{videoId},
		Tag:         tag,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.VideoDetailResponse{
		Video:   mapper.VideoToContentItem(video),
		Related: related.Items,
	}
	if related.NextToken != nil {
		encoded, encErr := cursorcodec.Encode(cursorcodec.State{entity.KindVideo: related.NextToken})
		if encErr != nil {
			return nil, encErr
		}
		res.RelatedCursors = &encoded
	}
	return res, nil
}

// publishViewed is fire-and-forget: a lost view event must never fail the
// detail request.
func (s *videoService) publishViewed(ctx context.Context, videoId, visitorId string) {
	payload, err := json.Marshal(dto.VideoViewedMessage{VideoId: videoId, VisitorId: visitorId})
	if err != nil {
		s.log.Warn("VideoService", "Failed to marshal view message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.log.Warn("VideoService", "Failed to publish view message", map[string]interface{}{
			"videoId": videoId,
			"error":   err.Error(),
		})
	}
}

// GetChannelVideos pages through one channel's uploads newest-first.
func (s *videoService) GetChannelVideos(ctx context.Context, channelId string, req *dto.ChannelVideosQuery) (*dto.ChannelVideosResponse, error) {
	channel, err := s.channels.FindById(ctx, channelId)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.PageSize
	}

	var state cursorcodec.State
	if req.Cursors != "" {
		decoded, decErr := cursorcodec.Decode(req.Cursors)
		if decErr != nil {
			return nil, decErr
		}
		state = decoded
	}

	res := &dto.ChannelVideosResponse{
		Channel: mapper.ChannelToContentItem(channel),
		Data:    []dto.ContentItem{},
	}
	if state != nil && state[entity.KindVideo] == nil {
		return res, nil
	}

	result, err := s.videoFetcher.Fetch(ctx, contract.FetchRequest{
		Mode:    contract.ModeContinuation,
		Quota:   limit,
		Token:   state[entity.KindVideo],
		OwnerId: channelId,
		Sort:    defaultRecencySort(),
	})
	if err != nil {
		return nil, err
	}

	res.Data = result.Items
	if result.NextToken != nil {
		encoded, encErr := cursorcodec.Encode(cursorcodec.State{entity.KindVideo: result.NextToken})
		if encErr != nil {
			return nil, encErr
		}
		res.Cursors = &encoded
	}
	return res, nil
}
