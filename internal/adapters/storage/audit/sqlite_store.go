package audit

import (
	"context"
	"database/sql"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/audit"
)

// SQLiteStore implements the audit Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit log store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends an entry.
// PRE: entry is valid
// POST: entry is persisted
func (s *SQLiteStore) Save(ctx context.Context, e domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_audit (id, created_at, action, actor_id, actor_email, actor_role, target_id, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, storage.FormatTime(e.Timestamp), e.Action, e.ActorID, e.ActorEmail, e.ActorRole, e.TargetID, e.IPAddress)
	return err
}

// ListRecent returns the newest entries first. A limit <= 0 returns all.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := `SELECT id, created_at, action, actor_id, actor_email, actor_role, target_id, ip_address
		FROM admin_audit ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Action, &e.ActorID, &e.ActorEmail, &e.ActorRole, &e.TargetID, &e.IPAddress); err != nil {
			return nil, err
		}
		e.Timestamp = storage.ParseTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}
