package audit

import (
	"context"

	domain "trust/internal/domain/audit"
)

// Store persists the admin activity log. Entries are append-only.
type Store interface {
	Save(ctx context.Context, entry domain.Entry) error
	ListRecent(ctx context.Context, limit int) ([]domain.Entry, error)
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
