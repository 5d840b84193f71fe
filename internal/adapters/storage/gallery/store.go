package gallery

import (
	"context"

	domain "trust/internal/domain/gallery"
)

// Store persists gallery Image state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Image, error)
	Save(ctx context.Context, value domain.Image) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Image, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Category string
	Limit    int
}
