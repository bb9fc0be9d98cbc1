package quiz

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vidlearn/vidlearn-server/internal/domain"
)

// Extractive chunk bounds: pieces of transcript long enough to carry a fact
// but short enough to read as an answer option.
const (
	minChunkLen    = 30
	maxChunkLen    = 200
	splitWordCount = 50

	fallbackTimestampMin = 30
	fallbackTimestampMax = 300
)

// ExtractiveQuestions builds questions directly from transcript sentences
// when remote generation is unavailable. Returns nil for transcripts with
// no usable sentences.
func ExtractiveQuestions(cleaned string, difficulty domain.QuizDifficulty, count int) []domain.Question {
	chunks := extractChunks(cleaned)
	if len(chunks) == 0 {
		return nil
	}
	if count > len(chunks) {
		count = len(chunks)
	}

	questions := make([]domain.Question, 0, count)
	// Spread picks across the transcript rather than front-loading them.
	step := len(chunks) / count

	for i := 0; i < count; i++ {
		chunk := chunks[i*step]

		var q domain.Question
		if i%2 == 0 {
			q = multipleChoiceFrom(chunk, chunks, i*step)
		} else {
			q = trueFalseFrom(chunk)
		}
		q.ID = i + 1
		q.Difficulty = difficulty
		q.Timestamp = fallbackTimestampMin + rand.Intn(fallbackTimestampMax-fallbackTimestampMin+1)
		questions = append(questions, q)
	}
	return questions
}

// extractChunks returns transcript pieces sized for answer options. Long
// sentences are split into fixed word-count pieces.
func extractChunks(cleaned string) []string {
	var chunks []string
	for _, sentence := range splitSentences(cleaned) {
		if len(sentence) <= 20 {
			continue
		}
		if len(sentence) <= maxChunkLen {
			if len(sentence) >= minChunkLen {
				chunks = append(chunks, sentence)
			}
			continue
		}

		words := strings.Fields(sentence)
		for start := 0; start < len(words); start += splitWordCount {
			end := start + splitWordCount
			if end > len(words) {
				end = len(words)
			}
			piece := strings.Join(words[start:end], " ")
			if len(piece) >= minChunkLen {
				chunks = append(chunks, piece)
			}
		}
	}
	return chunks
}

func multipleChoiceFrom(chunk string, chunks []string, index int) domain.Question {
	options := []domain.Option{{
		ID:          "a",
		Text:        optionText(chunk),
		Explanation: "This statement comes directly from the video.",
	}}

	for offset := 1; len(options) < 4; offset++ {
		var text string
		if offset < len(chunks) {
			text = optionText(chunks[(index+offset)%len(chunks)])
		}
		if text == "" || text == options[0].Text {
			text = fmt.Sprintf("The video spends most of its time on an unrelated topic (%d).", offset)
		}
		options = append(options, domain.Option{
			ID:          optionID(len(options)),
			Text:        text,
			Explanation: "This does not answer the question about this part of the video.",
		})
	}

	return domain.Question{
		Question:      "Which of the following statements is made in the video?",
		Options:       options,
		CorrectAnswer: "a",
		QuestionType:  domain.QuestionMultipleChoice,
	}
}

func trueFalseFrom(chunk string) domain.Question {
	return domain.Question{
		Question: fmt.Sprintf("True or false: the video states that %q.", optionText(chunk)),
		Options: []domain.Option{
			{ID: "a", Text: "True", Explanation: "This statement appears in the video."},
			{ID: "b", Text: "False", Explanation: "The statement does appear in the video."},
		},
		CorrectAnswer: "a",
		QuestionType:  domain.QuestionTrueFalse,
	}
}

// optionText bounds a chunk for use as an answer option.
func optionText(chunk string) string {
	if len(chunk) > 100 {
		chunk = strings.TrimSpace(chunk[:100])
	}
	return chunk
}

// SummaryQuestions is the last resort when the transcript yields nothing:
// true/false questions from summary sentences, padded with generic title
// questions up to the minimum quiz size. Never returns an empty set.
func SummaryQuestions(summary, title string, difficulty domain.QuizDifficulty) []domain.Question {
	var questions []domain.Question

	for _, sentence := range splitSentences(summary) {
		if len(sentence) <= 10 {
			continue
		}
		questions = append(questions, domain.Question{
			ID:            len(questions) + 1,
			Question:      fmt.Sprintf("True or false: the video's summary mentions %q.", optionText(sentence)),
			Options:       trueFalseOptions("This is part of the video's summary.", "The summary does mention this."),
			CorrectAnswer: "a",
			Difficulty:    difficulty,
			QuestionType:  domain.QuestionTrueFalse,
		})
		if len(questions) >= minQuestions {
			break
		}
	}

	generic := []string{
		fmt.Sprintf("True or false: this video is titled %q.", title),
		"True or false: this quiz was generated from the video's content.",
		"True or false: watching the video helps answer these questions.",
	}
	for _, text := range generic {
		if len(questions) >= minQuestions {
			break
		}
		questions = append(questions, domain.Question{
			ID:            len(questions) + 1,
			Question:      text,
			Options:       trueFalseOptions("Correct.", "This is true."),
			CorrectAnswer: "a",
			Difficulty:    difficulty,
			QuestionType:  domain.QuestionTrueFalse,
		})
	}
	return questions
}

func trueFalseOptions(trueExplanation, falseExplanation string) []domain.Option {
	return []domain.Option{
		{ID: "a", Text: "True", Explanation: trueExplanation},
		{ID: "b", Text: "False", Explanation: falseExplanation},
	}
}
