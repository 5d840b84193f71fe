package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/event"
)

const photoColumns = "id, event_id, image_url, public_id, caption, created_at"

// GetPhoto retrieves a Photo by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetPhoto(ctx context.Context, id string) (domain.Photo, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+photoColumns+" FROM event_photos WHERE id = ?", id)
	p, err := scanPhoto(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Photo{}, fmt.Errorf("photo not found: %w", err)
	}
	return p, err
}

// SavePhotos inserts or replaces photos in one transaction.
// PRE: every photo has been validated and references an existing event
// POST: all photos persisted, or none
func (s *SQLiteStore) SavePhotos(ctx context.Context, photos []domain.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO event_photos (`+photoColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			image_url = excluded.image_url,
			public_id = excluded.public_id,
			caption = excluded.caption`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range photos {
		if _, err := stmt.ExecContext(ctx, p.ID, p.EventID, p.ImageURL, p.PublicID, p.Caption, storage.FormatTime(p.CreatedAt)); err != nil {
			return fmt.Errorf("save photo %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// DeletePhoto removes a single photo.
// PRE: id is non-empty
// POST: photo removed, or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) DeletePhoto(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM event_photos WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("photo not found: %w", sql.ErrNoRows)
	}
	return nil
}

// ListPhotos returns an event's photos, newest first.
func (s *SQLiteStore) ListPhotos(ctx context.Context, eventID string) ([]domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+photoColumns+" FROM event_photos WHERE event_id = ? ORDER BY created_at DESC, id", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPhotos(rows)
}

// ListPhotosForEvents returns photos grouped by event id for a set of events.
func (s *SQLiteStore) ListPhotosForEvents(ctx context.Context, eventIDs []string) (map[string][]domain.Photo, error) {
	out := make(map[string][]domain.Photo, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(eventIDs)), ", ")
	args := make([]any, len(eventIDs))
	for i, id := range eventIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+photoColumns+" FROM event_photos WHERE event_id IN ("+placeholders+") ORDER BY created_at DESC, id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos, err := collectPhotos(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range photos {
		out[p.EventID] = append(out[p.EventID], p)
	}
	return out, nil
}

// CountPhotosByEvent returns photo counts keyed by event id.
func (s *SQLiteStore) CountPhotosByEvent(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT event_id, COUNT(*) FROM event_photos GROUP BY event_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// CountPhotos returns the total number of event photos.
func (s *SQLiteStore) CountPhotos(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM event_photos").Scan(&count)
	return count, err
}

func collectPhotos(rows *sql.Rows) ([]domain.Photo, error) {
	var results []domain.Photo
	for rows.Next() {
		p, err := scanPhoto(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// scanPhoto extracts a Photo from a row scanner function.
func scanPhoto(scan func(dest ...any) error) (domain.Photo, error) {
	var p domain.Photo
	var createdAt string
	if err := scan(&p.ID, &p.EventID, &p.ImageURL, &p.PublicID, &p.Caption, &createdAt); err != nil {
		return domain.Photo{}, err
	}
	p.CreatedAt = storage.ParseTime(createdAt)
	return p, nil
}
