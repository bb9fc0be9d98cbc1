package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/llm"
	"github.com/vidlearn/vidlearn-server/internal/textutil"
)

// Transcript sampling for the remote call: long transcripts are reduced to
// their beginning, middle, and end so the questions span the whole video.
const (
	aiSampleLimit = 12_000
	sampleSection = 4000
)

// Completer is the slice of the LLM client the generator needs.
type Completer interface {
	Complete(ctx context.Context, deployment string, messages []llm.Message, params llm.Params) (string, error)
}

// Generator produces quiz questions for a video.
type Generator struct {
	completer  Completer
	deployment string
	logger     *slog.Logger
}

// NewGenerator creates a quiz generator. A nil completer disables the
// remote path and the generator works from local fallbacks only.
func NewGenerator(completer Completer, deployment string, logger *slog.Logger) *Generator {
	return &Generator{
		completer:  completer,
		deployment: deployment,
		logger:     logger,
	}
}

// Generate builds quiz questions from the transcript. Never returns an
// empty set: remote failures degrade to an extractive question set, and an
// unusable transcript degrades to questions built from the summary and title.
func (g *Generator) Generate(ctx context.Context, transcript, summary, title string, difficulty domain.QuizDifficulty, density Density) []domain.Question {
	if !difficulty.Valid() {
		difficulty = domain.QuizMedium
	}
	if !density.Valid() {
		density = DensityMedium
	}

	cleaned := CleanTranscript(transcript)
	count := QuestionCount(cleaned, density)

	if g.completer != nil && cleaned != "" {
		questions, err := g.generateRemote(ctx, cleaned, title, difficulty, count)
		if err == nil {
			return questions
		}
		g.logger.Warn("remote quiz generation failed, using extractive questions",
			"title", title,
			"error", err,
		)
	}

	if questions := ExtractiveQuestions(cleaned, difficulty, count); len(questions) > 0 {
		return questions
	}
	return SummaryQuestions(summary, title, difficulty)
}

func (g *Generator) generateRemote(ctx context.Context, cleaned, title string, difficulty domain.QuizDifficulty, count int) ([]domain.Question, error) {
	prompt := quizPrompt(title, sampleTranscript(cleaned), count, difficulty)

	response, err := g.completer.Complete(ctx, g.deployment, []llm.Message{
		{Role: "system", Content: quizSystem},
		{Role: "user", Content: prompt},
	}, llm.Params{Temperature: 0.5, MaxTokens: 2000})
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(response)
	if err != nil {
		return nil, err
	}
	return normalizeQuestions(questions, difficulty), nil
}

// sampleTranscript keeps long transcripts within the prompt budget by
// joining the beginning, middle, and end sections.
func sampleTranscript(text string) string {
	if len(text) <= aiSampleLimit {
		return text
	}
	mid := len(text) / 2
	lo := textutil.SnapRuneStart(text, mid-sampleSection/2)
	hi := textutil.SnapRuneStart(text, mid+sampleSection/2)
	tail := textutil.SnapRuneStart(text, len(text)-sampleSection)
	return textutil.Truncate(text, sampleSection) + "\n...\n" + text[lo:hi] + "\n...\n" + text[tail:]
}

type questionEnvelope struct {
	Questions []domain.Question `json:"questions"`
}

// parseQuestions extracts the questions array from a model response. When
// the expected envelope is missing it searches the payload for any array
// whose elements look like questions.
func parseQuestions(response string) ([]domain.Question, error) {
	raw, err := llm.ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var envelope questionEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Questions) > 0 {
		return envelope.Questions, nil
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("quiz payload is not an object: %w", err)
	}
	for _, value := range payload {
		var candidates []domain.Question
		if err := json.Unmarshal(value, &candidates); err != nil {
			continue
		}
		if len(candidates) > 0 && candidates[0].Question != "" {
			return candidates, nil
		}
	}
	return nil, errors.New("no questions found in quiz payload")
}

// normalizeQuestions drops unusable questions and repairs the fields the
// model commonly gets wrong.
func normalizeQuestions(questions []domain.Question, difficulty domain.QuizDifficulty) []domain.Question {
	normalized := make([]domain.Question, 0, len(questions))

	for _, q := range questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}

		for i := range q.Options {
			if q.Options[i].ID == "" {
				q.Options[i].ID = optionID(i)
			}
		}

		if !hasOption(q.Options, q.CorrectAnswer) {
			q.CorrectAnswer = q.Options[0].ID
		}
		if !q.Difficulty.Valid() {
			q.Difficulty = difficulty
		}
		if q.QuestionType == "" {
			if len(q.Options) == 2 {
				q.QuestionType = domain.QuestionTrueFalse
			} else {
				q.QuestionType = domain.QuestionMultipleChoice
			}
		}
		if q.Timestamp < 0 {
			q.Timestamp = 0
		}

		q.ID = len(normalized) + 1
		normalized = append(normalized, q)
	}
	return normalized
}

func hasOption(options []domain.Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// optionID returns "a", "b", ... for an option index.
func optionID(i int) string {
	return string(rune('a' + i))
}
