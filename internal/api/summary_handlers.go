package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/errors"
	"github.com/vidlearn/vidlearn-server/internal/id"
	"github.com/vidlearn/vidlearn-server/internal/sse"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

func (s *Server) registerSummaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "generateSummaries",
		Method:        http.MethodPost,
		Path:          "/api/v1/videos/{id}/summaries",
		Summary:       "Generate summaries",
		Description:   "Starts background generation of the full summary variant matrix",
		Tags:          []string{"Summaries"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleGenerateSummaries)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSummaries",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}/summaries",
		Summary:     "List summaries",
		Description: "Returns generated summary variants, optionally filtered by difficulty and length",
		Tags:        []string{"Summaries"},
	}, s.handleListSummaries)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSummaryVariant",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}/summaries/{difficulty}/{length}",
		Summary:     "Get summary variant",
		Description: "Returns one summary variant by difficulty and length",
		Tags:        []string{"Summaries"},
	}, s.handleGetSummaryVariant)
}

// === DTOs ===

// VariantKeyRequest selects one cell of the variant matrix.
type VariantKeyRequest struct {
	Difficulty string `json:"difficulty" doc:"Summary difficulty level"`
	Length     string `json:"length" doc:"Summary length option"`
}

// GenerateSummariesRequest is the request body for starting a variant run.
// An empty priority list uses the default priority order.
type GenerateSummariesRequest struct {
	Priority []VariantKeyRequest `json:"priority,omitempty" doc:"Variants to generate first"`
}

// GenerateSummariesInput wraps the generate summaries request for Huma.
type GenerateSummariesInput struct {
	ID   string `path:"id" doc:"Video ID"`
	Body GenerateSummariesRequest
}

// GenerateSummariesResponse acknowledges a started variant run.
type GenerateSummariesResponse struct {
	VideoID  string `json:"video_id" doc:"Video ID"`
	Variants int    `json:"variants" doc:"Number of variants that will be generated"`
	Status   string `json:"status" doc:"Run status"`
}

// GenerateSummariesOutput wraps the response for Huma.
type GenerateSummariesOutput struct {
	Body GenerateSummariesResponse
}

// SummaryResponse contains one summary variant in API responses.
type SummaryResponse struct {
	ID         string            `json:"id" doc:"Summary ID"`
	VideoID    string            `json:"video_id" doc:"Video ID"`
	Difficulty domain.Difficulty `json:"difficulty" doc:"Summary difficulty level"`
	Length     domain.Length     `json:"length" doc:"Summary length option"`
	Text       string            `json:"text" doc:"Summary text"`
	Failed     bool              `json:"failed" doc:"Whether generation failed for this variant"`
	CreatedAt  time.Time         `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time         `json:"updated_at" doc:"Last update time"`
}

// ListSummariesInput contains parameters for listing summaries.
type ListSummariesInput struct {
	ID         string `path:"id" doc:"Video ID"`
	Difficulty string `query:"difficulty" doc:"Filter by difficulty level"`
	Length     string `query:"length" doc:"Filter by length option"`
}

// ListSummariesResponse contains a list of summary variants.
type ListSummariesResponse struct {
	Summaries []SummaryResponse `json:"summaries" doc:"List of summary variants"`
}

// ListSummariesOutput wraps the list summaries response for Huma.
type ListSummariesOutput struct {
	Body ListSummariesResponse
}

// GetSummaryVariantInput addresses one cell of the variant matrix.
type GetSummaryVariantInput struct {
	ID         string `path:"id" doc:"Video ID"`
	Difficulty string `path:"difficulty" doc:"Summary difficulty level"`
	Length     string `path:"length" doc:"Summary length option"`
}

// SummaryOutput wraps a single summary response for Huma.
type SummaryOutput struct {
	Body SummaryResponse
}

// === Handlers ===

func (s *Server) handleGenerateSummaries(ctx context.Context, input *GenerateSummariesInput) (*GenerateSummariesOutput, error) {
	video, err := s.store.GetVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	priority := make([]domain.VariantKey, 0, len(input.Body.Priority))
	for _, key := range input.Body.Priority {
		difficulty, err := domain.ParseDifficulty(key.Difficulty)
		if err != nil {
			return nil, errors.Validation("invalid priority difficulty: " + key.Difficulty)
		}
		length, err := domain.ParseLength(key.Length)
		if err != nil {
			return nil, errors.Validation("invalid priority length: " + key.Length)
		}
		priority = append(priority, domain.VariantKey{Difficulty: difficulty, Length: length})
	}
	if len(priority) == 0 {
		priority = summarizer.DefaultPriorityVariants()
	}

	go s.runSummaryGeneration(video, priority)

	return &GenerateSummariesOutput{
		Body: GenerateSummariesResponse{
			VideoID:  video.ID,
			Variants: len(domain.AllVariantKeys()),
			Status:   "started",
		},
	}, nil
}

// runSummaryGeneration produces the full variant matrix in the background,
// streaming progress over SSE and persisting the result.
func (s *Server) runSummaryGeneration(video *domain.Video, priority []domain.VariantKey) {
	ctx := context.Background()

	sink := func(event summarizer.ProgressEvent) {
		key := domain.VariantKey{Difficulty: event.Difficulty, Length: event.Length}
		switch event.Status {
		case summarizer.StatusStarted:
			s.sseManager.Emit(sse.NewVariantEvent(sse.EventVariantStarted, video.ID, key, ""))
		case summarizer.StatusCompleted:
			s.sseManager.Emit(sse.NewVariantEvent(sse.EventVariantCompleted, video.ID, key, event.Summary))
		case summarizer.StatusFailed:
			s.sseManager.Emit(sse.NewVariantEvent(sse.EventVariantFailed, video.ID, key, ""))
		}
	}

	matrix, err := s.summarizer.GenerateVariants(ctx, video.Transcript, video.Title, priority, sink)
	if err != nil {
		s.logger.Error("variant generation failed",
			"video_id", video.ID,
			"error", err,
		)
		return
	}

	if err := s.store.SaveVariantMatrix(ctx, video.ID, matrix, func() string {
		return id.MustGenerate(id.PrefixSummary)
	}); err != nil {
		s.logger.Error("failed to persist variant matrix",
			"video_id", video.ID,
			"error", err,
		)
	}

	s.sseManager.Emit(sse.NewSummaryRunEvent(video.ID, matrix.Len(), matrix.Succeeded()))
}

func (s *Server) handleListSummaries(ctx context.Context, input *ListSummariesInput) (*ListSummariesOutput, error) {
	if _, err := s.store.GetVideo(ctx, input.ID); err != nil {
		return nil, err
	}

	var difficulty domain.Difficulty
	if input.Difficulty != "" {
		parsed, err := domain.ParseDifficulty(input.Difficulty)
		if err != nil {
			return nil, errors.Validation("invalid difficulty: " + input.Difficulty)
		}
		difficulty = parsed
	}

	var length domain.Length
	if input.Length != "" {
		parsed, err := domain.ParseLength(input.Length)
		if err != nil {
			return nil, errors.Validation("invalid length: " + input.Length)
		}
		length = parsed
	}

	summaries, err := s.store.ListSummaries(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	response := ListSummariesResponse{Summaries: make([]SummaryResponse, 0, len(summaries))}
	for _, sum := range summaries {
		if difficulty != "" && sum.Difficulty != difficulty {
			continue
		}
		if length != "" && sum.Length != length {
			continue
		}
		response.Summaries = append(response.Summaries, summaryResponse(sum))
	}

	return &ListSummariesOutput{Body: response}, nil
}

func (s *Server) handleGetSummaryVariant(ctx context.Context, input *GetSummaryVariantInput) (*SummaryOutput, error) {
	difficulty, err := domain.ParseDifficulty(input.Difficulty)
	if err != nil {
		return nil, errors.Validation("invalid difficulty: " + input.Difficulty)
	}
	length, err := domain.ParseLength(input.Length)
	if err != nil {
		return nil, errors.Validation("invalid length: " + input.Length)
	}

	summary, err := s.store.GetSummary(ctx, input.ID, difficulty, length)
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: summaryResponse(summary)}, nil
}

func summaryResponse(sum *domain.Summary) SummaryResponse {
	return SummaryResponse{
		ID:         sum.ID,
		VideoID:    sum.VideoID,
		Difficulty: sum.Difficulty,
		Length:     sum.Length,
		Text:       sum.Text,
		Failed:     sum.Failed,
		CreatedAt:  sum.CreatedAt,
		UpdatedAt:  sum.UpdatedAt,
	}
}
