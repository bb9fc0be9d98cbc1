package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidlearn/vidlearn-server/internal/llm"
)

func TestEstimateDuration(t *testing.T) {
	tests := []struct {
		name          string
		transcriptLen int
		want          int
	}{
		{"empty", 0, 1},
		{"under a minute", 100, 1},
		{"ten minutes", 1750, 10},
		{"an hour", 10_500, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateDuration(tt.transcriptLen))
		})
	}
}

func TestFastTargetWords(t *testing.T) {
	assert.Equal(t, 75, fastTargetWords(1))
	assert.Equal(t, 75, fastTargetWords(4))
	assert.Equal(t, 150, fastTargetWords(5))
	assert.Equal(t, 150, fastTargetWords(14))
	assert.Equal(t, 250, fastTargetWords(15))
	assert.Equal(t, 250, fastTargetWords(120))
}

func TestFastSummarize(t *testing.T) {
	// ~10 minutes of speech lands in the 150-word budget.
	transcript := sentenceText(1800)

	counting := &countingCompleter{
		fn: func(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error) {
			assert.Contains(t, systemContent(messages), "concise content summarizer")
			assert.Contains(t, userContent(messages), "in 150 words or less")
			assert.Contains(t, userContent(messages), "Video title: My Talk")
			return "  A direct factual summary.  ", nil
		},
	}
	fast := NewFastSummarizer(counting, "gpt-4-1", testLogger())

	got, err := fast.Summarize(context.Background(), transcript, "My Talk")
	require.NoError(t, err)

	assert.Equal(t, "A direct factual summary.", got)
	assert.Equal(t, 1, counting.count())
}

func TestFastSummarize_EmptyTranscript(t *testing.T) {
	fast := NewFastSummarizer(completerFunc(func(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error) {
		t.Fatal("no remote call for empty transcript")
		return "", nil
	}), "gpt-4-1", testLogger())

	_, err := fast.Summarize(context.Background(), "   ", "Title")
	require.Error(t, err)
}

func TestFastSummarize_RemoteFailureFallsBack(t *testing.T) {
	counting := &countingCompleter{
		fn: func(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	fast := NewFastSummarizer(counting, "gpt-4-1", testLogger())

	got, err := fast.Summarize(context.Background(), "the opening words of the talk", "Title")
	require.NoError(t, err)

	assert.Contains(t, got, "Summary unavailable")
	assert.Contains(t, got, "the opening words of the talk")
	// Single attempt: failures degrade instead of retrying.
	assert.Equal(t, 1, counting.count())
}

func TestFastSummarize_LongTranscriptTruncatedInPrompt(t *testing.T) {
	transcript := sentenceText(fastPromptBudget + 10_000)

	fast := NewFastSummarizer(completerFunc(func(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error) {
		prompt := userContent(messages)
		assert.Contains(t, prompt, "[Transcript truncated for length]")
		assert.Less(t, len(prompt), fastPromptBudget+1000)
		return "summary", nil
	}), "gpt-4-1", testLogger())

	got, err := fast.Summarize(context.Background(), transcript, "Long Talk")
	require.NoError(t, err)
	assert.Equal(t, "summary", got)
}

func TestFastFallbackSummary_LongTranscriptCutAtWordBudget(t *testing.T) {
	transcript := strings.TrimSpace(strings.Repeat("word ", 500))

	got := fastFallbackSummary(transcript)

	assert.True(t, strings.HasSuffix(got, "..."))
	body := strings.TrimPrefix(got, "Summary unavailable. Here's the beginning of the transcript:\n\n")
	assert.Len(t, strings.Fields(strings.TrimSuffix(body, "...")), fastFallbackWords)
}
