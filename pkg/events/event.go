package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "VIDEO_VIEWED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewVideoViewed builds the event mirrored to the external notification
// system when a video detail page is served.
func NewVideoViewed(videoId, visitorId string) Event {
	return BaseEvent{
		Type: "VIDEO_VIEWED",
		Data: map[string]interface{}{
			"video_id":   videoId,
			"visitor_id": visitorId,
		},
		OccurredAt: time.Now(),
	}
}
