package quiz

import (
	"fmt"

	"github.com/vidlearn/vidlearn-server/internal/domain"
)

const quizSystem = `You create quiz questions about video content. Respond with JSON only.`

// difficultyInstruction steers question depth per difficulty level.
func difficultyInstruction(d domain.QuizDifficulty) string {
	switch d {
	case domain.QuizEasy:
		return "Ask about facts stated directly in the transcript. " +
			"Answers should be findable by anyone who watched the video once."
	case domain.QuizHard:
		return "Ask questions that require connecting ideas across the video, " +
			"applying its concepts, or reasoning about implications. " +
			"Distractors should be plausible to someone who only skimmed."
	default:
		return "Mix direct recall with questions that require understanding " +
			"the video's main ideas and how they relate."
	}
}

func quizPrompt(title, sample string, count int, difficulty domain.QuizDifficulty) string {
	return fmt.Sprintf(`Create %d quiz questions about this video.

Video title: %s

Difficulty: %s. %s

Transcript:
%s

Respond with only a JSON object in this exact format:
{
  "questions": [
    {
      "id": 1,
      "question": "...",
      "options": [
        {"id": "a", "text": "...", "explanation": "why this is right or wrong"},
        {"id": "b", "text": "...", "explanation": "..."},
        {"id": "c", "text": "...", "explanation": "..."},
        {"id": "d", "text": "...", "explanation": "..."}
      ],
      "correctAnswer": "a",
      "difficulty": "%s",
      "questionType": "multiple_choice",
      "timestamp": 120
    }
  ]
}

questionType is "multiple_choice" or "true_false" (true_false uses two options).
timestamp is the approximate second in the video where the answer appears, or 0 if unknown.
Every option needs an explanation.`, count, title, difficulty, difficultyInstruction(difficulty), sample, difficulty)
}
