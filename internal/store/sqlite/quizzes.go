package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/store"
)

// quizColumns is the ordered list of columns selected in quiz queries.
// Must match the scan order in scanQuiz.
const quizColumns = `id, video_id, difficulty, questions, created_at`

func scanQuiz(scanner interface{ Scan(dest ...any) error }) (*domain.Quiz, error) {
	var q domain.Quiz

	var (
		questions string
		createdAt string
	)

	err := scanner.Scan(
		&q.ID,
		&q.VideoID,
		&q.Difficulty,
		&questions,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return nil, fmt.Errorf("decode quiz questions: %w", err)
	}
	q.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// CreateQuiz inserts a new quiz. Questions are stored as a JSON document.
func (s *Store) CreateQuiz(ctx context.Context, q *domain.Quiz) error {
	if err := q.Validate(); err != nil {
		return store.ErrInvalidInput.WithCause(err)
	}

	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("encode quiz questions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, video_id, difficulty, questions, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		q.ID,
		q.VideoID,
		string(q.Difficulty),
		string(questions),
		formatTime(q.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetQuiz retrieves a quiz by its ID.
// Returns store.ErrNotFound if the quiz does not exist.
func (s *Store) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = ?`, quizID)

	q, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetLatestQuiz retrieves the most recent quiz for a video at a difficulty.
// Returns store.ErrNotFound if none has been generated.
func (s *Store) GetLatestQuiz(ctx context.Context, videoID string, difficulty domain.QuizDifficulty) (*domain.Quiz, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+quizColumns+` FROM quizzes
		WHERE video_id = ? AND difficulty = ?
		ORDER BY created_at DESC LIMIT 1`,
		videoID, string(difficulty))

	q, err := scanQuiz(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListQuizzes returns all quizzes for a video, newest first.
func (s *Store) ListQuizzes(ctx context.Context, videoID string) ([]*domain.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quizColumns+` FROM quizzes
		WHERE video_id = ? ORDER BY created_at DESC`,
		videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*domain.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return quizzes, nil
}
