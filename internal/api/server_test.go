package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidlearn/vidlearn-server/internal/genre"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/quiz"
	"github.com/vidlearn/vidlearn-server/internal/sse"
	"github.com/vidlearn/vidlearn-server/internal/store/sqlite"
	"github.com/vidlearn/vidlearn-server/internal/summarizer"
)

const testClassification = `{"genre": "educational", "content_type": "informational", ` +
	`"sentiment": "positive", "tone": "calm", "engagement_style": "direct"}`

const testQuizJSON = `{"questions": [
	{"id": 1, "question": "What powers the cell?",
	 "options": [{"id": "a", "text": "Mitochondria"}, {"id": "b", "text": "Ribosomes"},
	             {"id": "c", "text": "The nucleus"}, {"id": "d", "text": "Chloroplasts"}],
	 "correctAnswer": "a", "questionType": "multiple_choice", "timestamp": 42},
	{"id": 2, "question": "The video covers photosynthesis.",
	 "options": [{"id": "a", "text": "True"}, {"id": "b", "text": "False"}],
	 "correctAnswer": "a", "questionType": "true_false"}
]}`

// scriptedCompleter routes on the system prompt so one fake serves the
// whole pipeline behind the handlers.
type scriptedCompleter struct {
	mu    sync.Mutex
	calls int
}

func (c *scriptedCompleter) Complete(_ context.Context, _ string, messages []llm.Message, _ llm.Params) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	system := messages[0].Content
	switch {
	case strings.Contains(system, "correct errors"), strings.Contains(system, "correcting chunk"):
		return "Corrected transcript about cell biology and energy production.", nil
	case strings.Contains(system, "summarize sections"):
		return "The section explains how mitochondria produce energy for the cell.", nil
	case strings.Contains(system, "classify video content"):
		return testClassification, nil
	case strings.Contains(system, "unified video summaries"):
		return "The video walks through cellular energy production step by step.", nil
	case strings.Contains(system, "quiz questions"):
		return testQuizJSON, nil
	default:
		return "", nil
	}
}

func newTestServer(t *testing.T) (*Server, humatest.TestAPI) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	completer := &scriptedCompleter{}
	corrector := summarizer.NewCorrector(completer, "chat", logger)
	processor := summarizer.NewChunkProcessor(completer, "chat", logger)
	classifier := genre.NewClassifier(completer, "reasoning", logger)
	templates := genre.NewStore("", logger)
	assembler := summarizer.NewAssembler(completer, "chat", classifier, templates, false, logger)
	summaryService := summarizer.NewService(corrector, processor, assembler, 0, logger)

	quizGenerator := quiz.NewGenerator(completer, "quiz", logger)

	manager := sse.NewManager(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)
	t.Cleanup(cancel)

	s := NewServer(st, summaryService, quizGenerator, manager, sse.NewHandler(manager, logger), "http://localhost:8051", logger)

	return s, humatest.Wrap(t, s.api)
}

// decodeData unwraps the response envelope into the expected data type.
func decodeData[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Version int  `json:"v"`
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, EnvelopeVersion, envelope.Version)
	require.True(t, envelope.Success, "expected success envelope, got %s", resp.Body.String())
	return envelope.Data
}

func createTestVideo(t *testing.T, api humatest.TestAPI, title string) VideoResponse {
	t.Helper()

	resp := api.Post("/api/v1/videos", map[string]any{
		"title": title,
		"transcript": "Today we look at the cell. The mitochondria is the powerhouse of the cell. " +
			"It converts nutrients into usable energy through respiration. " +
			"Plants additionally capture light energy through photosynthesis in chloroplasts.",
	})
	require.Equal(t, 201, resp.Code, resp.Body.String())
	return decodeData[VideoResponse](t, resp)
}

func TestHealthCheck(t *testing.T) {
	_, api := newTestServer(t)

	resp := api.Get("/health")
	require.Equal(t, 200, resp.Code)

	health := decodeData[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
	assert.Contains(t, health.Components, "sse")
}
