package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/gallery"
)

const imageColumns = "id, image_url, public_id, title, description, category, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new gallery store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Image by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Image, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+imageColumns+" FROM gallery WHERE id = ?", id)
	entity, err := scanImage(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Image{}, fmt.Errorf("gallery image not found: %w", err)
	}
	return entity, err
}

// Save persists an Image to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Image) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO gallery (`+imageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			image_url = excluded.image_url,
			public_id = excluded.public_id,
			title = excluded.title,
			description = excluded.description,
			category = excluded.category`,
		entity.ID,
		entity.ImageURL,
		entity.PublicID,
		entity.Title,
		entity.Description,
		entity.Category,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes an Image from the database.
// PRE: id is non-empty
// POST: Entity is removed, or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM gallery WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("gallery image not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves Images newest first, optionally by category.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Image, error) {
	query := "SELECT " + imageColumns + " FROM gallery"
	var args []any
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Image
	for rows.Next() {
		entity, err := scanImage(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of gallery images.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM gallery").Scan(&count)
	return count, err
}

func scanImage(scan func(dest ...any) error) (domain.Image, error) {
	var entity domain.Image
	var createdAt string
	err := scan(&entity.ID, &entity.ImageURL, &entity.PublicID, &entity.Title, &entity.Description, &entity.Category, &createdAt)
	if err != nil {
		return domain.Image{}, err
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, nil
}
