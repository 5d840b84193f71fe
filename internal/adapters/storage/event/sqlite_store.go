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

const eventColumns = "id, title, description, activity_type, location, event_date, created_at, updated_at"

// SQLiteStore implements Store and PhotoStore using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	entity, err := scanEvent(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event, replacing any existing row with the same id.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = storage.FormatTime(entity.UpdatedAt)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			activity_type = excluded.activity_type,
			location = excluded.location,
			event_date = excluded.event_date,
			updated_at = excluded.updated_at`,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.ActivityType,
		entity.Location,
		entity.DateString(),
		storage.FormatTime(entity.CreatedAt),
		updatedAt,
	)
	return err
}

// Delete removes an Event; its photos go with it via ON DELETE CASCADE.
// PRE: id is non-empty
// POST: Event and its photos removed, or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("event not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves Events based on the filter, newest event date first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	var qb strings.Builder
	var where []string
	var args []any

	qb.WriteString("SELECT " + eventColumns + " FROM events")
	if filter.ActivityType != "" {
		where = append(where, "activity_type = ?")
		args = append(args, filter.ActivityType)
	}
	if !filter.From.IsZero() {
		where = append(where, "event_date >= ?")
		args = append(args, filter.From.Format(domain.DateLayout))
	}
	if !filter.To.IsZero() {
		where = append(where, "event_date <= ?")
		args = append(args, filter.To.Format(domain.DateLayout))
	}
	if len(where) > 0 {
		qb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY event_date DESC, created_at DESC")
	if filter.Limit > 0 {
		qb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of events.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count)
	return count, err
}

// scanEvent extracts an Event from a row scanner function.
func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var entity domain.Event
	var eventDate, createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.ActivityType,
		&entity.Location,
		&eventDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	if d, err := domain.ParseDate(eventDate); err == nil {
		entity.EventDate = d
	}
	entity.CreatedAt = storage.ParseTime(createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt = storage.ParseTime(updatedAt.String)
	}
	return entity, nil
}
