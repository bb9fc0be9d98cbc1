package genre

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidlearn/vidlearn-server/internal/llm"
)

type fakeCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func TestClassifier_Classify(t *testing.T) {
	fake := &fakeCompleter{
		responses: []string{`{"genre": "gaming", "content_type": "entertaining", "sentiment": "positive", "tone": "energetic", "engagement_style": "casual"}`},
	}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "some gameplay transcript", "Boss Fight Compilation")

	assert.Equal(t, "gaming", got.Genre)
	assert.Equal(t, "entertaining", got.ContentType)
	assert.Equal(t, "positive", got.Sentiment)
	assert.Equal(t, 1, fake.calls)
}

func TestClassifier_Classify_EmptyTranscript(t *testing.T) {
	fake := &fakeCompleter{}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "   ", "Title")

	assert.Equal(t, "unknown", got.Genre)
	assert.Equal(t, "informational", got.ContentType)
	assert.Zero(t, fake.calls, "no remote call for empty input")
}

func TestClassifier_Classify_RetriesThenSucceeds(t *testing.T) {
	fake := &fakeCompleter{
		errs:      []error{errors.New("transient")},
		responses: []string{"", `{"genre": "science", "content_type": "informational"}`},
	}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "about black holes", "Black Holes Explained")

	assert.Equal(t, "science", got.Genre)
	assert.Equal(t, 2, fake.calls)
}

func TestClassifier_Classify_FailureUsesDefault(t *testing.T) {
	fake := &fakeCompleter{
		errs: []error{errors.New("down"), errors.New("down")},
	}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "transcript text", "Title")

	assert.Equal(t, "educational", got.Genre)
	assert.Equal(t, "informational", got.ContentType)
}

func TestClassifier_Classify_UnparseableResponseUsesDefault(t *testing.T) {
	fake := &fakeCompleter{
		responses: []string{"I cannot classify this.", "still no json"},
	}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "transcript text", "Title")

	assert.Equal(t, "educational", got.Genre)
}

func TestClassifier_Classify_FillsMissingFields(t *testing.T) {
	fake := &fakeCompleter{
		responses: []string{`{"genre": "history"}`},
	}
	c := NewClassifier(fake, "o4-mini", testLogger())

	got := c.Classify(context.Background(), "the roman empire", "Rome")

	assert.Equal(t, "history", got.Genre)
	assert.Equal(t, "informational", got.ContentType)
	assert.Equal(t, "neutral", got.Sentiment)
}
