package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/id"
	"github.com/vidlearn/vidlearn-server/internal/sse"
)

func (s *Server) registerVideoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createVideo",
		Method:        http.MethodPost,
		Path:          "/api/v1/videos",
		Summary:       "Create video",
		Description:   "Registers a video with its transcript",
		Tags:          []string{"Videos"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateVideo)

	huma.Register(s.api, huma.Operation{
		OperationID: "listVideos",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos",
		Summary:     "List videos",
		Description: "Returns all videos, newest first, without transcripts",
		Tags:        []string{"Videos"},
	}, s.handleListVideos)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVideo",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}",
		Summary:     "Get video",
		Description: "Returns a video by ID, including its transcript",
		Tags:        []string{"Videos"},
	}, s.handleGetVideo)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteVideo",
		Method:        http.MethodDelete,
		Path:          "/api/v1/videos/{id}",
		Summary:       "Delete video",
		Description:   "Deletes a video and all of its summaries and quizzes",
		Tags:          []string{"Videos"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteVideo)

	huma.Register(s.api, huma.Operation{
		OperationID: "correctTranscript",
		Method:      http.MethodPost,
		Path:        "/api/v1/videos/{id}/transcript/correction",
		Summary:     "Correct transcript",
		Description: "Runs the best-effort transcript correction pass and persists the result",
		Tags:        []string{"Videos"},
	}, s.handleCorrectTranscript)
}

// === DTOs ===

// VideoResponse contains video data in API responses.
type VideoResponse struct {
	ID         string    `json:"id" doc:"Video ID"`
	ExternalID string    `json:"external_id,omitempty" doc:"External platform ID"`
	Title      string    `json:"title" doc:"Video title"`
	Transcript string    `json:"transcript,omitempty" doc:"Full transcript text"`
	WordCount  int       `json:"word_count" doc:"Transcript word count"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last update time"`
}

// CreateVideoRequest is the request body for creating a video.
type CreateVideoRequest struct {
	Title      string `json:"title" minLength:"1" maxLength:"500" doc:"Video title"`
	Transcript string `json:"transcript" minLength:"1" doc:"Full transcript text"`
	ExternalID string `json:"external_id,omitempty" maxLength:"100" doc:"External platform ID"`
}

// CreateVideoInput wraps the create video request for Huma.
type CreateVideoInput struct {
	Body CreateVideoRequest
}

// VideoOutput wraps the video response for Huma.
type VideoOutput struct {
	Body VideoResponse
}

// ListVideosResponse contains a list of videos.
type ListVideosResponse struct {
	Videos []VideoResponse `json:"videos" doc:"List of videos"`
}

// ListVideosOutput wraps the list videos response for Huma.
type ListVideosOutput struct {
	Body ListVideosResponse
}

// VideoIDInput contains the video path parameter.
type VideoIDInput struct {
	ID string `path:"id" doc:"Video ID"`
}

// DeleteVideoOutput is the empty response for video deletion.
type DeleteVideoOutput struct{}

// TranscriptResponse contains the corrected transcript.
type TranscriptResponse struct {
	VideoID    string `json:"video_id" doc:"Video ID"`
	Transcript string `json:"transcript" doc:"Corrected transcript text"`
	Changed    bool   `json:"changed" doc:"Whether the correction pass changed the text"`
	WordCount  int    `json:"word_count" doc:"Corrected transcript word count"`
}

// TranscriptOutput wraps the transcript response for Huma.
type TranscriptOutput struct {
	Body TranscriptResponse
}

// === Handlers ===

func (s *Server) handleCreateVideo(ctx context.Context, input *CreateVideoInput) (*VideoOutput, error) {
	videoID, err := id.Generate(id.PrefixVideo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	video := &domain.Video{
		ID:         videoID,
		ExternalID: input.Body.ExternalID,
		Title:      input.Body.Title,
		Transcript: input.Body.Transcript,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateVideo(ctx, video); err != nil {
		return nil, err
	}

	s.sseManager.Emit(sse.NewVideoEvent(sse.EventVideoCreated, video.ID, video.Title))

	return &VideoOutput{Body: videoResponse(video, true)}, nil
}

func (s *Server) handleListVideos(ctx context.Context, _ *struct{}) (*ListVideosOutput, error) {
	videos, err := s.store.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	response := ListVideosResponse{Videos: make([]VideoResponse, 0, len(videos))}
	for _, v := range videos {
		response.Videos = append(response.Videos, videoResponse(v, false))
	}

	return &ListVideosOutput{Body: response}, nil
}

func (s *Server) handleGetVideo(ctx context.Context, input *VideoIDInput) (*VideoOutput, error) {
	video, err := s.store.GetVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &VideoOutput{Body: videoResponse(video, true)}, nil
}

func (s *Server) handleDeleteVideo(ctx context.Context, input *VideoIDInput) (*DeleteVideoOutput, error) {
	video, err := s.store.GetVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteVideo(ctx, video.ID); err != nil {
		return nil, err
	}

	s.sseManager.Emit(sse.NewVideoEvent(sse.EventVideoDeleted, video.ID, video.Title))

	return &DeleteVideoOutput{}, nil
}

func (s *Server) handleCorrectTranscript(ctx context.Context, input *VideoIDInput) (*TranscriptOutput, error) {
	video, err := s.store.GetVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	corrected := s.summarizer.CorrectTranscript(ctx, video.Transcript, video.Title)
	changed := corrected != video.Transcript

	if changed {
		if err := s.store.UpdateVideoTranscript(ctx, video.ID, corrected); err != nil {
			return nil, err
		}
	}

	return &TranscriptOutput{
		Body: TranscriptResponse{
			VideoID:    video.ID,
			Transcript: corrected,
			Changed:    changed,
			WordCount:  len(strings.Fields(corrected)),
		},
	}, nil
}

func videoResponse(v *domain.Video, includeTranscript bool) VideoResponse {
	response := VideoResponse{
		ID:         v.ID,
		ExternalID: v.ExternalID,
		Title:      v.Title,
		WordCount:  v.WordCount(),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
	if includeTranscript {
		response.Transcript = v.Transcript
	}
	return response
}
