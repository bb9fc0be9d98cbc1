package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{"beginner", DifficultyBeginner, false},
		{"  Intermediate ", DifficultyIntermediate, false},
		{"EXPERT", DifficultyExpert, false},
		{"easy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDifficulty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		want    Length
		wantErr bool
	}{
		{"short", LengthShort, false},
		{"Very_Long", LengthVeryLong, false},
		{"medium", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllVariantKeys(t *testing.T) {
	keys := AllVariantKeys()

	assert.Len(t, keys, len(Difficulties())*len(Lengths()))

	seen := map[VariantKey]bool{}
	for _, k := range keys {
		assert.True(t, k.Valid())
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestVariantMatrix(t *testing.T) {
	m := make(VariantMatrix)

	key := VariantKey{Difficulty: DifficultyIntermediate, Length: LengthNormal}
	m.Set(key, "a summary")
	m.Set(VariantKey{Difficulty: DifficultyBeginner, Length: LengthShort},
		FailureMarkerPrefix+": service unavailable")

	text, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, "a summary", text)

	_, ok = m.Get(VariantKey{Difficulty: DifficultyExpert, Length: LengthLong})
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Succeeded())
}

func TestIsFailureMarker(t *testing.T) {
	assert.True(t, IsFailureMarker(FailureMarkerPrefix+": timeout"))
	assert.False(t, IsFailureMarker("a perfectly good summary"))
	assert.False(t, IsFailureMarker(""))
}

func TestSummary_Validate(t *testing.T) {
	s := &Summary{Difficulty: DifficultyAdvanced, Length: LengthLong}
	assert.NoError(t, s.Validate())

	s.Difficulty = "impossible"
	assert.ErrorIs(t, s.Validate(), ErrInvalidDifficulty)

	s.Difficulty = DifficultyAdvanced
	s.Length = "tiny"
	assert.ErrorIs(t, s.Validate(), ErrInvalidLength)
}

func TestVideo_Validate(t *testing.T) {
	v := &Video{Title: "Title", Transcript: "some words here"}
	assert.NoError(t, v.Validate())
	assert.Equal(t, 3, v.WordCount())

	assert.ErrorIs(t, (&Video{Transcript: "x"}).Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, (&Video{Title: "x", Transcript: "  "}).Validate(), ErrEmptyTranscript)
}

func TestQuiz_Validate(t *testing.T) {
	q := &Quiz{
		Difficulty: QuizMedium,
		Questions: []Question{{
			ID:            1,
			Question:      "True or false?",
			Options:       []Option{{ID: "a", Text: "True"}, {ID: "b", Text: "False"}},
			CorrectAnswer: "a",
			QuestionType:  QuestionTrueFalse,
		}},
	}
	assert.NoError(t, q.Validate())

	q.Difficulty = "brutal"
	assert.ErrorIs(t, q.Validate(), ErrInvalidQuizDifficulty)

	q.Difficulty = QuizHard
	q.Questions = nil
	assert.Error(t, q.Validate())
}
