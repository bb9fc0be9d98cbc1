// Package sse implements Server-Sent Events for streaming summarization
// progress and quiz updates to clients.
package sse

import (
	"time"

	"github.com/vidlearn/vidlearn-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventVideoCreated represents a video creation event.
	EventVideoCreated EventType = "video.created"
	// EventVideoDeleted represents a video deletion event.
	EventVideoDeleted EventType = "video.deleted"

	// EventVariantStarted represents the start of one summary variant.
	EventVariantStarted EventType = "summary.variant_started"
	// EventVariantCompleted represents a finished summary variant.
	EventVariantCompleted EventType = "summary.variant_completed"
	// EventVariantFailed represents a summary variant that could not be generated.
	EventVariantFailed EventType = "summary.variant_failed"
	// EventSummaryRunCompleted represents the end of a full variant run.
	EventSummaryRunCompleted EventType = "summary.run_completed"

	// EventQuizGenerated represents a newly generated quiz.
	EventQuizGenerated EventType = "quiz.generated"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// VideoID filters delivery to clients watching a specific video.
	// Empty means broadcast to all clients.
	VideoID string `json:"-"`
}

// VideoEventData is the data payload for video lifecycle events.
type VideoEventData struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// VariantEventData is the data payload for summary variant events.
// Summary is set only on completed events.
type VariantEventData struct {
	VideoID    string            `json:"video_id"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Length     domain.Length     `json:"length"`
	Summary    string            `json:"summary,omitempty"`
}

// SummaryRunEventData is the data payload for run completion events.
type SummaryRunEventData struct {
	VideoID   string `json:"video_id"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
}

// QuizEventData is the data payload for quiz generation events.
type QuizEventData struct {
	VideoID    string                `json:"video_id"`
	QuizID     string                `json:"quiz_id"`
	Difficulty domain.QuizDifficulty `json:"difficulty"`
	Questions  int                   `json:"questions"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewVideoEvent creates a video lifecycle event.
func NewVideoEvent(eventType EventType, videoID, title string) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		VideoID:   videoID,
		Data:      VideoEventData{VideoID: videoID, Title: title},
	}
}

// NewVariantEvent creates a summary variant lifecycle event.
func NewVariantEvent(eventType EventType, videoID string, key domain.VariantKey, summary string) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		VideoID:   videoID,
		Data: VariantEventData{
			VideoID:    videoID,
			Difficulty: key.Difficulty,
			Length:     key.Length,
			Summary:    summary,
		},
	}
}

// NewSummaryRunEvent creates a run completion event.
func NewSummaryRunEvent(videoID string, total, succeeded int) Event {
	return Event{
		Type:      EventSummaryRunCompleted,
		Timestamp: time.Now(),
		VideoID:   videoID,
		Data:      SummaryRunEventData{VideoID: videoID, Total: total, Succeeded: succeeded},
	}
}

// NewQuizEvent creates a quiz generation event.
func NewQuizEvent(videoID, quizID string, difficulty domain.QuizDifficulty, questions int) Event {
	return Event{
		Type:      EventQuizGenerated,
		Timestamp: time.Now(),
		VideoID:   videoID,
		Data: QuizEventData{
			VideoID:    videoID,
			QuizID:     quizID,
			Difficulty: difficulty,
			Questions:  questions,
		},
	}
}

// NewHeartbeatEvent creates a connection keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}
