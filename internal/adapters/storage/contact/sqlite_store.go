package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/contact"
)

const submissionColumns = "id, name, email, phone, message, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new contact submission store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Submission by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+submissionColumns+" FROM contact_submissions WHERE id = ?", id)
	entity, err := scanSubmission(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Submission{}, fmt.Errorf("contact submission not found: %w", err)
	}
	return entity, err
}

// Save persists a Submission. Submissions are never edited, so a
// repeated id is an error.
// PRE: entity has been validated
// POST: Entity is inserted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Submission) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO contact_submissions (`+submissionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.Phone,
		entity.Message,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// Delete removes a Submission from the database.
// PRE: id is non-empty
// POST: Entity is removed, or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contact_submissions WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("contact submission not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves Submissions newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Submission, error) {
	query := "SELECT " + submissionColumns + " FROM contact_submissions ORDER BY created_at DESC, id"
	var args []any
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Submission
	for rows.Next() {
		entity, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the number of stored submissions.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_submissions").Scan(&count)
	return count, err
}

func scanSubmission(scan func(dest ...any) error) (domain.Submission, error) {
	var entity domain.Submission
	var createdAt string
	if err := scan(&entity.ID, &entity.Name, &entity.Email, &entity.Phone, &entity.Message, &createdAt); err != nil {
		return domain.Submission{}, err
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	return entity, nil
}
