package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/settings"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new settings store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the document stored under key.
// PRE: key is non-empty
// POST: Returns the setting or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Get(ctx context.Context, key string) (domain.Setting, error) {
	var out domain.Setting
	var value, updatedAt string
	err := s.db.QueryRowContext(ctx, "SELECT key, value, updated_at FROM site_settings WHERE key = ?", key).
		Scan(&out.Key, &value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Setting{}, fmt.Errorf("setting %q not found: %w", key, err)
	}
	if err != nil {
		return domain.Setting{}, err
	}
	out.Value = []byte(value)
	out.UpdatedAt = storage.ParseTime(updatedAt)
	return out, nil
}

// Upsert writes the document under its key, replacing any previous value.
// PRE: value.Key is a known key and Value is valid JSON
// POST: exactly one row exists for the key
func (s *SQLiteStore) Upsert(ctx context.Context, value domain.Setting) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO site_settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		value.Key,
		string(value.Value),
		storage.FormatTime(value.UpdatedAt),
	)
	return err
}

// List returns every stored settings document ordered by key.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Setting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value, updated_at FROM site_settings ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Setting
	for rows.Next() {
		var st domain.Setting
		var value, updatedAt string
		if err := rows.Scan(&st.Key, &value, &updatedAt); err != nil {
			return nil, err
		}
		st.Value = []byte(value)
		st.UpdatedAt = storage.ParseTime(updatedAt)
		results = append(results, st)
	}
	return results, rows.Err()
}
