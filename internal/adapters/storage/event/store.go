package event

import (
	"context"
	"time"

	domain "trust/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	Count(ctx context.Context) (int, error)
}

// PhotoStore persists photos attached to events.
type PhotoStore interface {
	GetPhoto(ctx context.Context, id string) (domain.Photo, error)
	SavePhotos(ctx context.Context, photos []domain.Photo) error
	DeletePhoto(ctx context.Context, id string) error
	ListPhotos(ctx context.Context, eventID string) ([]domain.Photo, error)
	ListPhotosForEvents(ctx context.Context, eventIDs []string) (map[string][]domain.Photo, error)
	CountPhotosByEvent(ctx context.Context) (map[string]int, error)
	CountPhotos(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
// From and To are inclusive dates; zero values leave that side open.
type ListFilter struct {
	ActivityType string
	From         time.Time
	To           time.Time
	Limit        int
}
