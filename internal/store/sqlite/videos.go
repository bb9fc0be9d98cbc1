package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vidlearn/vidlearn-server/internal/domain"
	"github.com/vidlearn/vidlearn-server/internal/store"
)

// videoColumns is the ordered list of columns selected in video queries.
// Must match the scan order in scanVideo.
const videoColumns = `id, external_id, title, transcript, created_at, updated_at`

// scanVideo scans a sql.Row (or sql.Rows via its Scan method) into a domain.Video.
func scanVideo(scanner interface{ Scan(dest ...any) error }) (*domain.Video, error) {
	var v domain.Video

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&v.ID,
		&v.ExternalID,
		&v.Title,
		&v.Transcript,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	v.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// CreateVideo inserts a new video.
// Returns store.ErrAlreadyExists on a duplicate ID or external ID.
func (s *Store) CreateVideo(ctx context.Context, v *domain.Video) error {
	if err := v.Validate(); err != nil {
		return store.ErrInvalidInput.WithCause(err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (id, external_id, title, transcript, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID,
		v.ExternalID,
		v.Title,
		v.Transcript,
		formatTime(v.CreatedAt),
		formatTime(v.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetVideo retrieves a video by its ID.
// Returns store.ErrNotFound if the video does not exist.
func (s *Store) GetVideo(ctx context.Context, videoID string) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ?`, videoID)

	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetVideoByExternalID retrieves a video by its external platform ID.
// Returns store.ErrNotFound if no video matches.
func (s *Store) GetVideoByExternalID(ctx context.Context, externalID string) (*domain.Video, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE external_id = ?`, externalID)

	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListVideos returns all videos ordered by creation time, newest first.
func (s *Store) ListVideos(ctx context.Context) ([]*domain.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideoTranscript replaces a video's transcript, typically after a
// correction pass.
func (s *Store) UpdateVideoTranscript(ctx context.Context, videoID, transcript string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE videos SET transcript = ?, updated_at = ? WHERE id = ?`,
		transcript,
		formatTime(time.Now()),
		videoID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteVideo removes a video along with its summaries and quizzes.
func (s *Store) DeleteVideo(ctx context.Context, videoID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, videoID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
