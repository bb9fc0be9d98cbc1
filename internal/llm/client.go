// Package llm provides a rate-limited client for an OpenAI-compatible
// chat-completions service.
//
// The client performs no internal retries. Callers that can degrade
// gracefully wrap calls in retry.Do and fall back on their own terms.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/config"
	"github.com/vidlearn/vidlearn-server/internal/ratelimit"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Params controls a single completion call.
type Params struct {
	Temperature float64
	MaxTokens   int
	// Timeout overrides the client default when positive.
	Timeout time.Duration
}

// Client is a rate-limited chat-completions client.
// Rate limiting is keyed by deployment so heavy chunk traffic against one
// model does not starve the others.
type Client struct {
	http       *http.Client
	limiter    *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
	endpoint   string
	apiKey     string
	apiVersion string
	timeout    time.Duration
}

// New creates a completion client from config.
func New(cfg config.LLMConfig, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http:       &http.Client{},
		limiter:    ratelimit.New(cfg.RPS, cfg.Burst),
		logger:     logger,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		timeout:    timeout,
	}
}

type chatRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a chat-completion request to the given deployment and
// returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, deployment string, messages []Message, params Params) (string, error) {
	if c.endpoint == "" {
		return "", wrapError("complete", deployment, fmt.Errorf("no endpoint configured: %w", ErrService))
	}
	if len(messages) == 0 {
		return "", wrapError("complete", deployment, fmt.Errorf("no messages: %w", ErrMalformed))
	}

	// Wait for rate limit
	if err := c.limiter.Wait(ctx, deployment); err != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("rate limit wait: %w", err))
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("encode request: %w", err))
	}

	u := fmt.Sprintf("%s/openai/deployments/%s/chat/completions", c.endpoint, url.PathEscape(deployment))
	if c.apiVersion != "" {
		u += "?api-version=" + url.QueryEscape(c.apiVersion)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	c.logger.Debug("completion request",
		"deployment", deployment,
		"messages", len(messages),
		"max_tokens", params.MaxTokens,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", wrapError("complete", deployment, ErrTimeout)
		}
		return "", wrapError("complete", deployment, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decode.
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", wrapError("complete", deployment, ErrRateLimited)
	case resp.StatusCode >= 500:
		return "", wrapError("complete", deployment, ErrService)
	default:
		return "", wrapError("complete", deployment,
			fmt.Errorf("unexpected status %d: %s: %w", resp.StatusCode, truncateForLog(raw), ErrService))
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("parse response: %w", ErrMalformed))
	}
	if decoded.Error != nil {
		return "", wrapError("complete", deployment, fmt.Errorf("%s: %w", decoded.Error.Message, ErrService))
	}
	if len(decoded.Choices) == 0 {
		return "", wrapError("complete", deployment, fmt.Errorf("no choices: %w", ErrMalformed))
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", wrapError("complete", deployment, fmt.Errorf("empty completion: %w", ErrMalformed))
	}
	return content, nil
}

func truncateForLog(b []byte) string {
	const max = 200
	s := string(b)
	if len(s) > max {
		return textutil.Truncate(s, max) + "..."
	}
	return s
}
