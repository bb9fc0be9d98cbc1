package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/store"
)

// summaryColumns is the ordered list of columns selected in summary queries.
// Must match the scan order in scanSummary.
const summaryColumns = `id, video_id, difficulty, length, text, failed, created_at, updated_at`

func scanSummary(scanner interface{ Scan(dest ...any) error }) (*domain.Summary, error) {
	var sum domain.Summary

	var (
		failed    int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&sum.ID,
		&sum.VideoID,
		&sum.Difficulty,
		&sum.Length,
		&sum.Text,
		&failed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sum.Failed = failed != 0
	sum.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sum.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &sum, nil
}

// UpsertSummary inserts a summary or replaces the existing one for the same
// video, difficulty, and length.
func (s *Store) UpsertSummary(ctx context.Context, sum *domain.Summary) error {
	if err := sum.Validate(); err != nil {
		return store.ErrInvalidInput.WithCause(err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, video_id, difficulty, length, text, failed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (video_id, difficulty, length) DO UPDATE SET
			text = excluded.text,
			failed = excluded.failed,
			updated_at = excluded.updated_at`,
		sum.ID,
		sum.VideoID,
		string(sum.Difficulty),
		string(sum.Length),
		sum.Text,
		boolToInt(sum.Failed),
		formatTime(sum.CreatedAt),
		formatTime(sum.UpdatedAt),
	)
	return err
}

// GetSummary retrieves one summary variant for a video.
// Returns store.ErrNotFound if the variant has not been generated.
func (s *Store) GetSummary(ctx context.Context, videoID string, difficulty domain.Difficulty, length domain.Length) (*domain.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+summaryColumns+` FROM summaries
		WHERE video_id = ? AND difficulty = ? AND length = ?`,
		videoID, string(difficulty), string(length))

	sum, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// ListSummaries returns all summary variants stored for a video.
func (s *Store) ListSummaries(ctx context.Context, videoID string) ([]*domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+summaryColumns+` FROM summaries
		WHERE video_id = ? ORDER BY difficulty, length`,
		videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetVariantMatrix rebuilds the difficulty-by-length matrix for a video
// from its stored summaries.
func (s *Store) GetVariantMatrix(ctx context.Context, videoID string) (domain.VariantMatrix, error) {
	summaries, err := s.ListSummaries(ctx, videoID)
	if err != nil {
		return nil, err
	}

	matrix := make(domain.VariantMatrix)
	for _, sum := range summaries {
		matrix.Set(sum.Key(), sum.Text)
	}
	return matrix, nil
}

// SaveVariantMatrix upserts every entry of a variant matrix for a video.
// Failure markers are stored with the failed flag set.
func (s *Store) SaveVariantMatrix(ctx context.Context, videoID string, matrix domain.VariantMatrix, newID func() string) error {
	now := time.Now()
	for difficulty, lengths := range matrix {
		for length, text := range lengths {
			sum := &domain.Summary{
				ID:         newID(),
				VideoID:    videoID,
				Difficulty: difficulty,
				Length:     length,
				Text:       text,
				Failed:     domain.IsFailureMarker(text),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := s.UpsertSummary(ctx, sum); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteSummaries removes all summary variants for a video.
func (s *Store) DeleteSummaries(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE video_id = ?`, videoID)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
