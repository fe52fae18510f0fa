package dto

type VideoDetailResponse struct {
	Video          ContentItem   `json:"video"`
	Related        []ContentItem `json:"related"`
	RelatedCursors *string       `json:"related_cursors"`
}

type ChannelVideosQuery struct {
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Cursors string `query:"cursors"`
}

type ChannelVideosResponse struct {
	Channel ContentItem   `json:"channel"`
	Data    []ContentItem `json:"data"`
	Cursors *string       `json:"cursors"`
}

// VideoViewedMessage is the payload published on the view-count topic.
type VideoViewedMessage struct {
	VideoId   string `json:"video_id"`
	VisitorId string `json:"visitor_id"`
}
