package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/retry"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Completer is the slice of the LLM client the pipeline needs.
type Completer interface {
	Complete(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error)
}

// Retry policy for per-chunk remote calls: three attempts with a flat
// one-second delay, then the deterministic fallback.
const (
	chunkAttempts   = 3
	chunkRetryDelay = time.Second
)

// fallbackPreviewLen bounds the extractive preview in fallback summaries.
const fallbackPreviewLen = 150

// ChunkProcessor summarizes individual transcript chunks. It is stateless
// and safe for concurrent use.
type ChunkProcessor struct {
	completer  Completer
	deployment string
	logger     *slog.Logger
}

// NewChunkProcessor creates a chunk processor using the given deployment.
func NewChunkProcessor(completer Completer, deployment string, logger *slog.Logger) *ChunkProcessor {
	return &ChunkProcessor{
		completer:  completer,
		deployment: deployment,
		logger:     logger,
	}
}

// Process summarizes one chunk. It never returns an error: exhausted
// retries produce a deterministic extractive fallback so the batch always
// has usable text for every non-empty chunk.
func (p *ChunkProcessor) Process(ctx context.Context, chunk Chunk, total int, title string) ChunkResult {
	if strings.TrimSpace(chunk.Text) == "" {
		return FailedResult(chunk.Index, fmt.Errorf("chunk %d is empty", chunk.Index+1))
	}

	position := chunk.Index + 1
	prompt := chunkSummaryPrompt(title, chunk.Text, position, total)

	var summary string
	err := retry.Do(ctx, chunkAttempts, chunkRetryDelay, func(ctx context.Context) error {
		text, err := p.completer.Complete(ctx, p.deployment, []llm.Message{
			{Role: "system", Content: chunkSummarySystem},
			{Role: "user", Content: prompt},
		}, llm.Params{Temperature: 0.3, MaxTokens: 500})
		if err != nil {
			return err
		}
		summary = text
		return nil
	})
	if err != nil {
		p.logger.Warn("chunk summarization exhausted retries, using fallback",
			"chunk", position,
			"total", total,
			"error", err,
		)
		return FallbackResult(chunk.Index, fallbackChunkSummary(chunk.Text, position), err.Error())
	}

	return SuccessResult(chunk.Index, summary)
}

// fallbackChunkSummary synthesizes an extractive stand-in: a short preview
// of the chunk plus its approximate word count.
func fallbackChunkSummary(chunkText string, position int) string {
	preview := strings.TrimSpace(chunkText)
	if len(preview) > fallbackPreviewLen {
		preview = strings.TrimSpace(textutil.Truncate(preview, fallbackPreviewLen)) + "..."
	}

	wordCount := len(strings.Fields(chunkText))

	var b strings.Builder
	fmt.Fprintf(&b, "**Chunk %d - Fallback Summary**\n\n", position)
	fmt.Fprintf(&b, "This section contains approximately %d words.\n\n", wordCount)
	fmt.Fprintf(&b, "Preview: %s\n\n", preview)
	b.WriteString("[Full AI summary unavailable - using basic extractive summary instead]")
	return b.String()
}
