package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
	"clipstream-be/internal/pkg/logger"
)

type fakeChannelRepo struct {
	channels map[string]*entity.Channel
}

func (r *fakeChannelRepo) FindById(_ context.Context, id string) (*entity.Channel, error) {
	channel, ok := r.channels[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return channel, nil
}

type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestGetDetailPublishesViewAndAttachesRelated(t *testing.T) {
	videoObjectId := primitive.NewObjectID()
	videoId := videoObjectId.Hex()
	repo := &fakeVideoRepo{videos: map[string]*entity.Video{
		videoId: {
			Id:         videoObjectId,
			Title:      "deep sea documentary",
			Kind:       entity.KindVideo,
			Tags:       []string{"nature", "ocean"},
			Visibility: entity.VisibilityPublic,
		},
	}}
	fetcher := &fakeFetcher{kind: entity.KindVideo, items: makeItems(entity.KindVideo, 30)}
	publisher := &capturingPublisher{}

	svc := NewVideoService(repo, &fakeChannelRepo{}, fetcher, publisher, testFeedConfig(), logger.NopLogger{})

	res, err := svc.GetDetail(context.Background(), "visitor-1", videoId)
	require.NoError(t, err)

	assert.Equal(t, videoId, res.Video.Id)
	assert.Len(t, res.Related, 8)
	assert.NotNil(t, res.RelatedCursors)

	req := fetcher.lastRequest()
	assert.Equal(t, "nature", req.Tag)
	assert.Equal(t, []string{videoId}, req.ExcludedIds)

	require.Len(t, publisher.payloads, 1)
	var msg dto.VideoViewedMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, videoId, msg.VideoId)
	assert.Equal(t, "visitor-1", msg.VisitorId)
}

func TestGetDetailPublishFailureDoesNotFailRequest(t *testing.T) {
	videoObjectId := primitive.NewObjectID()
	videoId := videoObjectId.Hex()
	repo := &fakeVideoRepo{videos: map[string]*entity.Video{
		videoId: {Id: videoObjectId, Kind: entity.KindVideo, Visibility: entity.VisibilityPublic},
	}}
	fetcher := &fakeFetcher{kind: entity.KindVideo, items: makeItems(entity.KindVideo, 5)}
	publisher := &capturingPublisher{err: assert.AnError}

	svc := NewVideoService(repo, &fakeChannelRepo{}, fetcher, publisher, testFeedConfig(), logger.NopLogger{})

	_, err := svc.GetDetail(context.Background(), "visitor-1", videoId)
	assert.NoError(t, err)
}

func TestGetDetailUnknownVideo(t *testing.T) {
	svc := NewVideoService(&fakeVideoRepo{}, &fakeChannelRepo{}, &fakeFetcher{}, &capturingPublisher{}, testFeedConfig(), logger.NopLogger{})

	_, err := svc.GetDetail(context.Background(), "visitor-1", primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestGetChannelVideosPagesByRecency(t *testing.T) {
	channelObjectId := primitive.NewObjectID()
	channelId := channelObjectId.Hex()
	channels := &fakeChannelRepo{channels: map[string]*entity.Channel{
		channelId: {Id: channelObjectId, Username: "diver", Subscribers: 12},
	}}
	fetcher := &fakeFetcher{kind: entity.KindVideo, items: makeItems(entity.KindVideo, 40)}

	svc := NewVideoService(&fakeVideoRepo{}, channels, fetcher, &capturingPublisher{}, testFeedConfig(), logger.NopLogger{})

	res, err := svc.GetChannelVideos(context.Background(), channelId, &dto.ChannelVideosQuery{})
	require.NoError(t, err)

	assert.Equal(t, channelId, res.Channel.Id)
	assert.Len(t, res.Data, 16)
	require.NotNil(t, res.Cursors)

	req := fetcher.lastRequest()
	assert.Equal(t, channelId, req.OwnerId)
	require.NotEmpty(t, req.Sort)
	assert.Equal(t, "createdAt", req.Sort[0].Name)

	res2, err := svc.GetChannelVideos(context.Background(), channelId, &dto.ChannelVideosQuery{Cursors: *res.Cursors})
	require.NoError(t, err)
	assert.Equal(t, "video-016", res2.Data[0].Id)
}

func TestGetChannelVideosUnknownChannel(t *testing.T) {
	svc := NewVideoService(&fakeVideoRepo{}, &fakeChannelRepo{}, &fakeFetcher{}, &capturingPublisher{}, testFeedConfig(), logger.NopLogger{})

	_, err := svc.GetChannelVideos(context.Background(), primitive.NewObjectID().Hex(), &dto.ChannelVideosQuery{})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}
