package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/errors"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Fast-path tuning. Speech runs at roughly 175 characters per minute, and
// the word budget scales with the estimated video length.
const (
	fastCharsPerMinute = 175
	fastPromptBudget   = 120_000
	fastFallbackWords  = 100
)

const fastSummarySystem = `You are a concise content summarizer. ` +
	`Provide direct, factual summaries without filler words.`

func fastSummaryPrompt(title, transcript string, targetWords int) string {
	return fmt.Sprintf("Create a concise summary of this video transcript in %d words or less. "+
		"Focus on key points and avoid filler words.\n\nVideo title: %s\n\nTranscript:\n%s",
		targetWords, title, transcript)
}

// FastSummarizer produces a quick single-call summary, trading the chunked
// pipeline's depth for latency.
type FastSummarizer struct {
	completer  Completer
	deployment string
	logger     *slog.Logger
}

// NewFastSummarizer creates a fast summarizer using the given deployment.
func NewFastSummarizer(completer Completer, deployment string, logger *slog.Logger) *FastSummarizer {
	return &FastSummarizer{
		completer:  completer,
		deployment: deployment,
		logger:     logger,
	}
}

// EstimateDuration returns the estimated video length in minutes for a
// transcript of the given size, never less than one minute.
func EstimateDuration(transcriptLen int) int {
	minutes := transcriptLen / fastCharsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// fastTargetWords maps an estimated duration to a summary word budget.
func fastTargetWords(minutes int) int {
	switch {
	case minutes < 5:
		return 75
	case minutes < 15:
		return 150
	default:
		return 250
	}
}

// Summarize produces the fast summary. It fails only on empty input: a
// remote failure degrades to an extractive preview of the transcript.
// One attempt only, the fast path trades retries for latency.
func (f *FastSummarizer) Summarize(ctx context.Context, transcript, title string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.Validation("transcript must not be empty")
	}

	targetWords := fastTargetWords(EstimateDuration(len(transcript)))

	sample := transcript
	if len(sample) > fastPromptBudget {
		sample = textutil.Truncate(sample, fastPromptBudget) + "\n\n[Transcript truncated for length]"
		f.logger.Warn("transcript truncated for fast summary",
			"size", len(transcript),
			"budget", fastPromptBudget,
		)
	}

	response, err := f.completer.Complete(ctx, f.deployment, []llm.Message{
		{Role: "system", Content: fastSummarySystem},
		{Role: "user", Content: fastSummaryPrompt(title, sample, targetWords)},
	}, llm.Params{Temperature: 0.3, MaxTokens: 500})
	if err != nil {
		f.logger.Warn("fast summarization failed, using extractive fallback", "error", err)
		return fastFallbackSummary(transcript), nil
	}

	return strings.TrimSpace(response), nil
}

// fastFallbackSummary returns the opening of the transcript when the remote
// call is unavailable.
func fastFallbackSummary(transcript string) string {
	preview := transcript
	if words := strings.Fields(transcript); len(words) > fastFallbackWords {
		preview = strings.Join(words[:fastFallbackWords], " ") + "..."
	}
	return "Summary unavailable. Here's the beginning of the transcript:\n\n" + preview
}
