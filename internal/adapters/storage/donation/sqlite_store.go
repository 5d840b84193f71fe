package donation

import (
	"context"

	"trust/internal/adapters/storage"
	domain "trust/internal/domain/donation"
)

const donationColumns = "id, donor_name, donor_email, donor_phone, amount_paise, donation_type, message, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new donation store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save records a Donation pledge.
// PRE: entity has been validated
// POST: Entity is inserted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Donation) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO donations (`+donationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entity.ID,
		entity.DonorName,
		entity.DonorEmail,
		entity.DonorPhone,
		entity.AmountPaise,
		entity.Type,
		entity.Message,
		storage.FormatTime(entity.CreatedAt),
	)
	return err
}

// List retrieves Donations newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Donation, error) {
	query := "SELECT " + donationColumns + " FROM donations"
	var args []any
	if filter.Type != "" {
		query += " WHERE donation_type = ?"
		args = append(args, filter.Type)
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Donation
	for rows.Next() {
		var d domain.Donation
		var createdAt string
		if err := rows.Scan(&d.ID, &d.DonorName, &d.DonorEmail, &d.DonorPhone, &d.AmountPaise, &d.Type, &d.Message, &createdAt); err != nil {
			return nil, err
		}
		d.CreatedAt = storage.ParseTime(createdAt)
		results = append(results, d)
	}
	return results, rows.Err()
}

// Count returns the number of recorded pledges.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM donations").Scan(&count)
	return count, err
}

// CountByType returns the number of pledges for one purpose, or all when empty.
func (s *SQLiteStore) CountByType(ctx context.Context, donationType string) (int, error) {
	if donationType == "" {
		return s.Count(ctx)
	}
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM donations WHERE donation_type = ?", donationType).Scan(&count)
	return count, err
}

// SumByType returns total pledged paise keyed by donation purpose.
func (s *SQLiteStore) SumByType(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT donation_type, SUM(amount_paise) FROM donations GROUP BY donation_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var t string
		var total int64
		if err := rows.Scan(&t, &total); err != nil {
			return nil, err
		}
		sums[t] = total
	}
	return sums, rows.Err()
}
