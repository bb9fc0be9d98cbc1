package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidQuizDifficulty reports an unrecognized quiz difficulty.
var ErrInvalidQuizDifficulty = errors.New("invalid quiz difficulty")

// QuizDifficulty is the difficulty level of a generated quiz.
type QuizDifficulty string

const (
	QuizEasy   QuizDifficulty = "easy"
	QuizMedium QuizDifficulty = "medium"
	QuizHard   QuizDifficulty = "hard"
)

// Valid returns true for a recognized quiz difficulty.
func (d QuizDifficulty) Valid() bool {
	switch d {
	case QuizEasy, QuizMedium, QuizHard:
		return true
	}
	return false
}

// ParseQuizDifficulty normalizes a string into a QuizDifficulty.
func ParseQuizDifficulty(s string) (QuizDifficulty, error) {
	d := QuizDifficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuizDifficulty, s)
	}
	return d, nil
}

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionMultipleAnswer QuestionType = "multiple_answer"
	QuestionTrueFalse      QuestionType = "true_false"
)

// Option is one answer choice with a per-option explanation.
type Option struct {
	ID          string `json:"id"` // "a", "b", ...
	Text        string `json:"text"`
	Explanation string `json:"explanation,omitempty"`
}

// Question is a single quiz question.
type Question struct {
	ID            int            `json:"id"`
	Question      string         `json:"question"`
	Options       []Option       `json:"options"`
	CorrectAnswer string         `json:"correctAnswer"`
	Difficulty    QuizDifficulty `json:"difficulty"`
	QuestionType  QuestionType   `json:"questionType"`
	// Timestamp is the estimated second in the video where the answer appears.
	Timestamp int `json:"timestamp"`
}

// Quiz is a persisted quiz for a video.
type Quiz struct {
	ID         string         `json:"id"`
	VideoID    string         `json:"video_id"`
	Difficulty QuizDifficulty `json:"difficulty"`
	Questions  []Question     `json:"questions"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks the fields required before persisting a quiz.
func (q *Quiz) Validate() error {
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuizDifficulty, q.Difficulty)
	}
	if len(q.Questions) == 0 {
		return errors.New("quiz must have at least one question")
	}
	return nil
}
