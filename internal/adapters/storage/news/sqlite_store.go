package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/news"
)

const postColumns = "id, title, excerpt, body, published, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new news store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Post by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM news WHERE id = ?", id)
	entity, err := scanPost(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, fmt.Errorf("news post not found: %w", err)
	}
	return entity, err
}

// Save persists a Post to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Post) error {
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = storage.FormatTime(entity.UpdatedAt)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO news (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			body = excluded.body,
			published = excluded.published,
			updated_at = excluded.updated_at`,
		entity.ID,
		entity.Title,
		entity.Excerpt,
		entity.Body,
		entity.Published,
		storage.FormatTime(entity.CreatedAt),
		updatedAt,
	)
	return err
}

// Delete removes a Post from the database.
// PRE: id is non-empty
// POST: Entity is removed, or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("news post not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves Posts newest first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Post, error) {
	query := "SELECT " + postColumns + " FROM news"
	var args []any
	if filter.PublishedOnly {
		query += " WHERE published = 1"
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

	var results []domain.Post
	for rows.Next() {
		entity, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of news posts.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news").Scan(&count)
	return count, err
}

func scanPost(scan func(dest ...any) error) (domain.Post, error) {
	var entity domain.Post
	var createdAt string
	var updatedAt sql.NullString
	err := scan(&entity.ID, &entity.Title, &entity.Excerpt, &entity.Body, &entity.Published, &createdAt, &updatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt = storage.ParseTime(updatedAt.String)
	}
	return entity, nil
}
