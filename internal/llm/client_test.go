package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidlearn/vidlearn-server/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.LLMConfig{
		Endpoint:       srv.URL,
		APIKey:         "test-key",
		APIVersion:     "2024-12-01-preview",
		RequestTimeout: 5 * time.Second,
		RPS:            100,
		Burst:          100,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func completionResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func TestClient_Complete(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/openai/deployments/gpt-4-1/chat/completions")
		assert.Equal(t, "2024-12-01-preview", r.URL.Query().Get("api-version"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.InDelta(t, 0.7, req.Temperature, 0.0001)
		assert.Equal(t, 800, req.MaxTokens)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse("  summary text  ")))
	})

	got, err := c.Complete(context.Background(), "gpt-4-1", []Message{
		{Role: "system", Content: "you summarize"},
		{Role: "user", Content: "summarize this"},
	}, Params{Temperature: 0.7, MaxTokens: 800})

	require.NoError(t, err)
	assert.Equal(t, "summary text", got, "reply should be trimmed")
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    "slow down",
			wantErr: ErrRateLimited,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantErr: ErrService,
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"bad prompt"}}`,
			wantErr: ErrService,
		},
		{
			name:    "invalid response body",
			status:  http.StatusOK,
			body:    "not json at all",
			wantErr: ErrMalformed,
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			body:    completionResponse("   "),
			wantErr: ErrMalformed,
		},
		{
			name:    "error envelope in 200",
			status:  http.StatusOK,
			body:    `{"error":{"message":"deployment not found"}}`,
			wantErr: ErrService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Complete(context.Background(), "gpt-4-1",
				[]Message{{Role: "user", Content: "hi"}}, Params{})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var llmErr *Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, "complete", llmErr.Op)
			assert.Equal(t, "gpt-4-1", llmErr.Deployment)
		})
	}
}

func TestClient_Complete_Timeout(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(completionResponse("late")))
	})

	_, err := c.Complete(context.Background(), "gpt-4-1",
		[]Message{{Role: "user", Content: "hi"}},
		Params{Timeout: 20 * time.Millisecond})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Complete_Validation(t *testing.T) {
	t.Run("no endpoint", func(t *testing.T) {
		c := New(config.LLMConfig{RPS: 1, Burst: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := c.Complete(context.Background(), "gpt-4-1",
			[]Message{{Role: "user", Content: "hi"}}, Params{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrService)
	})

	t.Run("no messages", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("request should not be sent")
		})
		_, err := c.Complete(context.Background(), "gpt-4-1", nil, Params{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}
