package settings

import (
	"context"

	domain "trust/internal/domain/settings"
)

// Store persists keyed settings documents.
type Store interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	Upsert(ctx context.Context, value domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}
