// Package domain contains the core business entities for the VidLearn
// summarization service.
package domain

import (
	"strings"
	"time"
)

// Video represents an ingested video and its transcript.
type Video struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id,omitempty"` // e.g. YouTube video ID
	Title      string    `json:"title"`
	Transcript string    `json:"transcript"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks the fields required before persisting a video.
func (v *Video) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(v.Transcript) == "" {
		return ErrEmptyTranscript
	}
	return nil
}

// WordCount returns the whitespace-separated word count of the transcript.
func (v *Video) WordCount() int {
	return len(strings.Fields(v.Transcript))
}
