package summarizer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/retry"
)

// Correction chunking: smaller chunks than summarization since corrected
// text must be reassembled verbatim.
const (
	singlePassLimit       = 3000
	correctionChunkSize   = 2500
	correctionOverlap     = 250
	correctionAttempts    = 2
	correctionRetryDelay  = time.Second
	correctionBoundaryWin = 100
)

// Corrector fixes speech recognition errors in transcripts.
type Corrector struct {
	completer  Completer
	deployment string
	logger     *slog.Logger
}

// NewCorrector creates a transcript corrector using the given deployment.
func NewCorrector(completer Completer, deployment string, logger *slog.Logger) *Corrector {
	return &Corrector{
		completer:  completer,
		deployment: deployment,
		logger:     logger,
	}
}

// Correct returns the corrected transcript. Correction is best-effort:
// any failure passes the original text through unchanged.
func (c *Corrector) Correct(ctx context.Context, transcript, title string) string {
	if transcript == "" {
		return transcript
	}

	if len(transcript) <= singlePassLimit {
		return c.correctSinglePass(ctx, transcript, title)
	}
	return c.correctBatched(ctx, transcript, title)
}

func (c *Corrector) correctSinglePass(ctx context.Context, transcript, title string) string {
	var corrected string
	err := retry.Do(ctx, correctionAttempts, correctionRetryDelay, func(ctx context.Context) error {
		text, err := c.completer.Complete(ctx, c.deployment, []llm.Message{
			{Role: "system", Content: correctionSystem},
			{Role: "user", Content: correctionPrompt(title, transcript)},
		}, llm.Params{Temperature: 0.1, MaxTokens: 4000})
		if err != nil {
			return err
		}
		corrected = text
		return nil
	})
	if err != nil {
		c.logger.Warn("transcript correction failed, keeping original",
			"title", title,
			"error", err,
		)
		return transcript
	}
	return corrected
}

func (c *Corrector) correctBatched(ctx context.Context, transcript, title string) string {
	chunks := splitForCorrection(transcript, correctionChunkSize, correctionOverlap)
	c.logger.Debug("batch correcting transcript",
		"chars", len(transcript),
		"chunks", len(chunks),
	)

	corrected := make([]string, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			corrected[i] = c.correctChunk(ctx, chunk, i+1, len(chunks), title)
		}(i, chunk)
	}
	wg.Wait()

	return strings.Join(corrected, " ")
}

// correctChunk corrects one chunk, passing the original through on failure.
func (c *Corrector) correctChunk(ctx context.Context, chunk string, position, total int, title string) string {
	var corrected string
	err := retry.Do(ctx, correctionAttempts, correctionRetryDelay, func(ctx context.Context) error {
		text, err := c.completer.Complete(ctx, c.deployment, []llm.Message{
			{Role: "system", Content: chunkCorrectionSystem(position, total, title)},
			{Role: "user", Content: "Fix the following transcript chunk: " + chunk},
		}, llm.Params{Temperature: 0.1, MaxTokens: 2000})
		if err != nil {
			return err
		}
		corrected = text
		return nil
	})
	if err != nil {
		c.logger.Warn("chunk correction failed, passing original through",
			"chunk", position,
			"total", total,
			"error", err,
		)
		return chunk
	}
	return corrected
}

// splitForCorrection splits text into overlapping chunks, breaking at a
// space only when one falls within the tail of the chunk.
func splitForCorrection(text string, chunkSize, overlap int) []string {
	var chunks []string
	start := 0

	for start < len(text) {
		end := start + chunkSize
		if end < len(text) {
			if space := strings.LastIndex(text[start:end], " "); space >= 0 {
				if pos := start + space; pos > start+chunkSize-correctionBoundaryWin {
					end = pos
				}
			}
		} else {
			end = len(text)
		}

		chunks = append(chunks, text[start:end])

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
		if start >= len(text) {
			break
		}
	}

	return chunks
}
