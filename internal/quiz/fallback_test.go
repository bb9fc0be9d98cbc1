package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidlearn/vidlearn-server/internal/domain"
)

func TestExtractiveQuestions(t *testing.T) {
	cleaned := CleanTranscript(transcript)

	questions := ExtractiveQuestions(cleaned, domain.QuizMedium, 4)
	require.Len(t, questions, 4)

	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.Equal(t, "a", q.CorrectAnswer)
		assert.Equal(t, domain.QuizMedium, q.Difficulty)

		// Timestamps land in the fallback window.
		assert.GreaterOrEqual(t, q.Timestamp, fallbackTimestampMin)
		assert.LessOrEqual(t, q.Timestamp, fallbackTimestampMax)

		for _, o := range q.Options {
			assert.NotEmpty(t, o.Text)
			assert.NotEmpty(t, o.Explanation)
		}
	}

	// Question types alternate, starting with multiple choice.
	assert.Equal(t, domain.QuestionMultipleChoice, questions[0].QuestionType)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, domain.QuestionTrueFalse, questions[1].QuestionType)
	assert.Len(t, questions[1].Options, 2)
	assert.Equal(t, domain.QuestionMultipleChoice, questions[2].QuestionType)
}

func TestExtractiveQuestions_CountCappedByChunks(t *testing.T) {
	cleaned := "Just a single sentence that is long enough to ask about."
	questions := ExtractiveQuestions(cleaned, domain.QuizEasy, 10)
	assert.Len(t, questions, 1)
}

func TestExtractiveQuestions_NothingUsable(t *testing.T) {
	assert.Nil(t, ExtractiveQuestions("", domain.QuizEasy, 5))
	assert.Nil(t, ExtractiveQuestions("too short. tiny. ok.", domain.QuizEasy, 5))
}

func TestExtractChunks_SplitsLongSentences(t *testing.T) {
	long := strings.Repeat("word ", 120) + "."
	chunks := extractChunks(long)

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		words := len(strings.Fields(c))
		assert.LessOrEqual(t, words, splitWordCount)
	}
	// 120 words split at 50 per piece gives three pieces.
	assert.Len(t, chunks, 3)
}

func TestSummaryQuestions(t *testing.T) {
	t.Run("built from summary sentences", func(t *testing.T) {
		summary := "The video explains photosynthesis. It also covers respiration in detail. Finally it reviews enzymes."
		questions := SummaryQuestions(summary, "Biology 101", domain.QuizEasy)

		require.Len(t, questions, minQuestions)
		for _, q := range questions {
			assert.Equal(t, domain.QuestionTrueFalse, q.QuestionType)
			assert.Equal(t, "a", q.CorrectAnswer)
			assert.Equal(t, domain.QuizEasy, q.Difficulty)
		}
		assert.Contains(t, questions[0].Question, "photosynthesis")
	})

	t.Run("padded with title questions", func(t *testing.T) {
		questions := SummaryQuestions("", "Biology 101", domain.QuizMedium)

		require.Len(t, questions, minQuestions)
		assert.Contains(t, questions[0].Question, "Biology 101")
	})

	t.Run("never empty even with nothing at all", func(t *testing.T) {
		questions := SummaryQuestions("", "", domain.QuizMedium)
		assert.NotEmpty(t, questions)
	})
}
