package account

import (
	"context"

	domain "trust/internal/domain/account"
)

// Store persists staff accounts. Lookups by email ignore case.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Account, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

// ListFilter narrows List. Zero values mean no limit and every role.
type ListFilter struct {
	Limit int
	Role  string
}
