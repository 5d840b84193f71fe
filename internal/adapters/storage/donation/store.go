package donation

import (
	"context"

	domain "trust/internal/domain/donation"
)

// Store persists Donation state.
type Store interface {
	Save(ctx context.Context, value domain.Donation) error
	List(ctx context.Context, filter ListFilter) ([]domain.Donation, error)
	Count(ctx context.Context) (int, error)
	CountByType(ctx context.Context, donationType string) (int, error)
	SumByType(ctx context.Context) (map[string]int64, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Type   string
	Limit  int
	Offset int
}
