package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/errors"
	"github.com/vidlearn/vidlearn-server/internal/id"
	"github.com/vidlearn/vidlearn-server/internal/quiz"
	"github.com/vidlearn/vidlearn-server/internal/sse"
	"github.com/vidlearn/vidlearn-server/internal/store"
)

func (s *Server) registerQuizRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "generateQuiz",
		Method:        http.MethodPost,
		Path:          "/api/v1/videos/{id}/quiz",
		Summary:       "Generate quiz",
		Description:   "Generates and stores a quiz for the video",
		Tags:          []string{"Quizzes"},
		DefaultStatus: http.StatusCreated,
	}, s.handleGenerateQuiz)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLatestQuiz",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}/quiz/latest",
		Summary:     "Get latest quiz",
		Description: "Returns the most recent quiz for the video at a difficulty",
		Tags:        []string{"Quizzes"},
	}, s.handleGetLatestQuiz)

	huma.Register(s.api, huma.Operation{
		OperationID: "listQuizzes",
		Method:      http.MethodGet,
		Path:        "/api/v1/videos/{id}/quizzes",
		Summary:     "List quizzes",
		Description: "Returns all quizzes for the video, newest first",
		Tags:        []string{"Quizzes"},
	}, s.handleListQuizzes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuiz",
		Method:      http.MethodGet,
		Path:        "/api/v1/quizzes/{id}",
		Summary:     "Get quiz",
		Description: "Returns a quiz by ID",
		Tags:        []string{"Quizzes"},
	}, s.handleGetQuiz)
}

// === DTOs ===

// GenerateQuizRequest is the request body for generating a quiz.
type GenerateQuizRequest struct {
	Difficulty string `json:"difficulty,omitempty" doc:"Quiz difficulty: easy, medium, or hard (default medium)"`
	Density    string `json:"density,omitempty" doc:"Question density: low, medium, or high (default medium)"`
}

// GenerateQuizInput wraps the generate quiz request for Huma.
type GenerateQuizInput struct {
	ID   string `path:"id" doc:"Video ID"`
	Body GenerateQuizRequest
}

// QuizResponse contains quiz data in API responses.
type QuizResponse struct {
	ID         string                `json:"id" doc:"Quiz ID"`
	VideoID    string                `json:"video_id" doc:"Video ID"`
	Difficulty domain.QuizDifficulty `json:"difficulty" doc:"Quiz difficulty"`
	Questions  []domain.Question     `json:"questions" doc:"Quiz questions"`
	CreatedAt  time.Time             `json:"created_at" doc:"Creation time"`
}

// QuizOutput wraps the quiz response for Huma.
type QuizOutput struct {
	Body QuizResponse
}

// LatestQuizInput contains parameters for fetching the latest quiz.
type LatestQuizInput struct {
	ID         string `path:"id" doc:"Video ID"`
	Difficulty string `query:"difficulty" doc:"Quiz difficulty (default medium)"`
}

// ListQuizzesResponse contains a list of quizzes.
type ListQuizzesResponse struct {
	Quizzes []QuizResponse `json:"quizzes" doc:"List of quizzes"`
}

// ListQuizzesOutput wraps the list quizzes response for Huma.
type ListQuizzesOutput struct {
	Body ListQuizzesResponse
}

// QuizIDInput contains the quiz path parameter.
type QuizIDInput struct {
	ID string `path:"id" doc:"Quiz ID"`
}

// === Handlers ===

func (s *Server) handleGenerateQuiz(ctx context.Context, input *GenerateQuizInput) (*QuizOutput, error) {
	video, err := s.store.GetVideo(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	difficulty := domain.QuizMedium
	if input.Body.Difficulty != "" {
		difficulty, err = domain.ParseQuizDifficulty(input.Body.Difficulty)
		if err != nil {
			return nil, errors.Validation("invalid quiz difficulty: " + input.Body.Difficulty)
		}
	}

	density := quiz.DensityMedium
	if input.Body.Density != "" {
		density, err = quiz.ParseDensity(input.Body.Density)
		if err != nil {
			return nil, errors.Validation("invalid question density: " + input.Body.Density)
		}
	}

	// The summary improves fallback questions when the transcript is thin.
	summaryText := s.latestSummaryText(ctx, video.ID)

	questions := s.quizzes.Generate(ctx, video.Transcript, summaryText, video.Title, difficulty, density)

	quizID, err := id.Generate(id.PrefixQuiz)
	if err != nil {
		return nil, err
	}

	created := &domain.Quiz{
		ID:         quizID,
		VideoID:    video.ID,
		Difficulty: difficulty,
		Questions:  questions,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateQuiz(ctx, created); err != nil {
		return nil, err
	}

	s.sseManager.Emit(sse.NewQuizEvent(video.ID, created.ID, difficulty, len(questions)))

	return &QuizOutput{Body: quizResponse(created)}, nil
}

// latestSummaryText returns the preferred summary variant text, or empty
// when no summary has been generated yet.
func (s *Server) latestSummaryText(ctx context.Context, videoID string) string {
	summary, err := s.store.GetSummary(ctx, videoID, domain.DifficultyIntermediate, domain.LengthNormal)
	if err != nil || summary.Failed {
		return ""
	}
	return summary.Text
}

func (s *Server) handleGetLatestQuiz(ctx context.Context, input *LatestQuizInput) (*QuizOutput, error) {
	if _, err := s.store.GetVideo(ctx, input.ID); err != nil {
		return nil, err
	}

	difficulty := domain.QuizMedium
	if input.Difficulty != "" {
		parsed, err := domain.ParseQuizDifficulty(input.Difficulty)
		if err != nil {
			return nil, errors.Validation("invalid quiz difficulty: " + input.Difficulty)
		}
		difficulty = parsed
	}

	latest, err := s.store.GetLatestQuiz(ctx, input.ID, difficulty)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound.WithMessage("no quiz generated for this video yet")
		}
		return nil, err
	}

	return &QuizOutput{Body: quizResponse(latest)}, nil
}

func (s *Server) handleListQuizzes(ctx context.Context, input *VideoIDInput) (*ListQuizzesOutput, error) {
	if _, err := s.store.GetVideo(ctx, input.ID); err != nil {
		return nil, err
	}

	quizzes, err := s.store.ListQuizzes(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	response := ListQuizzesResponse{Quizzes: make([]QuizResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		response.Quizzes = append(response.Quizzes, quizResponse(q))
	}

	return &ListQuizzesOutput{Body: response}, nil
}

func (s *Server) handleGetQuiz(ctx context.Context, input *QuizIDInput) (*QuizOutput, error) {
	q, err := s.store.GetQuiz(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &QuizOutput{Body: quizResponse(q)}, nil
}

func quizResponse(q *domain.Quiz) QuizResponse {
	return QuizResponse{
		ID:         q.ID,
		VideoID:    q.VideoID,
		Difficulty: q.Difficulty,
		Questions:  q.Questions,
		CreatedAt:  q.CreatedAt,
	}
}
