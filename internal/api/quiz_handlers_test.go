package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidlearn/vidlearn-server/internal/domain"
)

func TestGenerateQuiz(t *testing.T) {
	_, api := newTestServer(t)

	created := createTestVideo(t, api, "Cell Biology 101")

	resp := api.Post("/api/v1/videos/"+created.ID+"/quiz", map[string]any{
		"difficulty": "easy",
	})
	require.Equal(t, 201, resp.Code, resp.Body.String())

	generated := decodeData[QuizResponse](t, resp)
	assert.True(t, strings.HasPrefix(generated.ID, "quiz-"), "id = %q", generated.ID)
	assert.Equal(t, created.ID, generated.VideoID)
	assert.Equal(t, domain.QuizEasy, generated.Difficulty)
	require.Len(t, generated.Questions, 2)
	assert.Equal(t, "What powers the cell?", generated.Questions[0].Question)
	assert.Equal(t, domain.QuestionTrueFalse, generated.Questions[1].QuestionType)

	// The stored quiz is retrievable by ID and as the latest for its difficulty.
	getResp := api.Get("/api/v1/quizzes/" + generated.ID)
	require.Equal(t, 200, getResp.Code)
	assert.Equal(t, generated.ID, decodeData[QuizResponse](t, getResp).ID)

	latestResp := api.Get("/api/v1/videos/" + created.ID + "/quiz/latest?difficulty=easy")
	require.Equal(t, 200, latestResp.Code)
	assert.Equal(t, generated.ID, decodeData[QuizResponse](t, latestResp).ID)
}

func TestGenerateQuiz_DefaultsToMedium(t *testing.T) {
	_, api := newTestServer(t)

	created := createTestVideo(t, api, "Cell Biology 101")

	resp := api.Post("/api/v1/videos/"+created.ID+"/quiz", map[string]any{})
	require.Equal(t, 201, resp.Code)
	assert.Equal(t, domain.QuizMedium, decodeData[QuizResponse](t, resp).Difficulty)
}

func TestGenerateQuiz_InvalidInputs(t *testing.T) {
	_, api := newTestServer(t)

	created := createTestVideo(t, api, "Cell Biology 101")

	resp := api.Post("/api/v1/videos/"+created.ID+"/quiz", map[string]any{
		"difficulty": "brutal",
	})
	assert.Equal(t, 400, resp.Code)

	resp = api.Post("/api/v1/videos/"+created.ID+"/quiz", map[string]any{
		"density": "extreme",
	})
	assert.Equal(t, 400, resp.Code)

	resp = api.Post("/api/v1/videos/vid-missing/quiz", map[string]any{})
	assert.Equal(t, 404, resp.Code)
}

func TestGetLatestQuiz_NoneGenerated(t *testing.T) {
	_, api := newTestServer(t)

	created := createTestVideo(t, api, "Cell Biology 101")

	resp := api.Get("/api/v1/videos/" + created.ID + "/quiz/latest")
	assert.Equal(t, 404, resp.Code)
	assert.Contains(t, resp.Body.String(), "no quiz generated")
}

func TestListQuizzes(t *testing.T) {
	_, api := newTestServer(t)

	created := createTestVideo(t, api, "Cell Biology 101")

	for _, difficulty := range []string{"easy", "hard"} {
		resp := api.Post("/api/v1/videos/"+created.ID+"/quiz", map[string]any{
			"difficulty": difficulty,
		})
		require.Equal(t, 201, resp.Code)
	}

	resp := api.Get("/api/v1/videos/" + created.ID + "/quizzes")
	require.Equal(t, 200, resp.Code)
	list := decodeData[ListQuizzesResponse](t, resp)
	assert.Len(t, list.Quizzes, 2)

	resp = api.Get("/api/v1/videos/vid-missing/quizzes")
	assert.Equal(t, 404, resp.Code)
}
