package mapper

import (
	"clipstream-be/internal/dto"
	"clipstream-be/internal/entity"
)

func VideoToContentItem(v *entity.Video) dto.ContentItem {
	return dto.ContentItem{
		Id:           v.Id.Hex(),
		Type:         v.Kind,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailUrl: v.ThumbnailUrl,
		StreamUrl:    v.StreamUrl,
		OwnerId:      v.OwnerId.Hex(),
		Views:        v.Views,
		Likes:        v.Likes,
		Duration:     v.Duration,
		Tags:         v.Tags,
		CreatedAt:    v.CreatedAt,
		Score:        v.Score,
	}
}

func VideosToContentItems(videos []entity.Video) []dto.ContentItem {
	items := make([]dto.ContentItem, 0, len(videos))
	for i := range videos {
		items = append(items, VideoToContentItem(&videos[i]))
	}
	return items
}

func PlaylistToContentItem(p *entity.Playlist) dto.ContentItem {
	return dto.ContentItem{
		Id:           p.Id.Hex(),
		Type:         entity.KindPlaylist,
		Title:        p.Name,
		Description:  p.Description,
		ThumbnailUrl: p.ThumbnailUrl,
		OwnerId:      p.OwnerId.Hex(),
		ItemCount:    p.ItemCount,
		CreatedAt:    p.CreatedAt,
		Score:        p.Score,
	}
}

func PlaylistsToContentItems(playlists []entity.Playlist) []dto.ContentItem {
	items := make([]dto.ContentItem, 0, len(playlists))
	for i := range playlists {
		items = append(items, PlaylistToContentItem(&playlists[i]))
	}
	return items
}

func ChannelToContentItem(c *entity.Channel) dto.ContentItem {
	title := c.DisplayName
	if title == "" {
		title = c.Username
	}
	return dto.ContentItem{
		Id:          c.Id.Hex(),
		Type:        entity.KindChannel,
		Title:       title,
		AvatarUrl:   c.AvatarUrl,
		Subscribers: c.Subscribers,
		CreatedAt:   c.CreatedAt,
		Score:       c.Score,
	}
}

func ChannelsToContentItems(channels []entity.Channel) []dto.ContentItem {
	items := make([]dto.ContentItem, 0, len(channels))
	for i := range channels {
		items = append(items, ChannelToContentItem(&channels[i]))
	}
	return items
}
