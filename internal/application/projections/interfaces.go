package projections

import (
	"context"

	"trust/internal/adapters/storage/contact"
	"trust/internal/adapters/storage/donation"
	"trust/internal/adapters/storage/event"
	"trust/internal/adapters/storage/gallery"
	"trust/internal/adapters/storage/news"
	domainContact "trust/internal/domain/contact"
	domainDonation "trust/internal/domain/donation"
	domainEvent "trust/internal/domain/event"
	domainGallery "trust/internal/domain/gallery"
	domainNews "trust/internal/domain/news"
	domainSettings "trust/internal/domain/settings"
)

// EventStore interface for event queries.
type EventStore interface {
	GetByID(ctx context.Context, id string) (domainEvent.Event, error)
	List(ctx context.Context, filter event.ListFilter) ([]domainEvent.Event, error)
	Count(ctx context.Context) (int, error)
}

// PhotoStore interface for event photo queries.
type PhotoStore interface {
	ListPhotos(ctx context.Context, eventID string) ([]domainEvent.Photo, error)
	ListPhotosForEvents(ctx context.Context, eventIDs []string) (map[string][]domainEvent.Photo, error)
	CountPhotosByEvent(ctx context.Context) (map[string]int, error)
	CountPhotos(ctx context.Context) (int, error)
}

// GalleryStore interface for gallery queries.
type GalleryStore interface {
	GetByID(ctx context.Context, id string) (domainGallery.Image, error)
	List(ctx context.Context, filter gallery.ListFilter) ([]domainGallery.Image, error)
	Count(ctx context.Context) (int, error)
}

// NewsStore interface for news queries.
type NewsStore interface {
	GetByID(ctx context.Context, id string) (domainNews.Post, error)
	List(ctx context.Context, filter news.ListFilter) ([]domainNews.Post, error)
	Count(ctx context.Context) (int, error)
}

// ContactStore interface for contact submission queries.
type ContactStore interface {
	List(ctx context.Context, filter contact.ListFilter) ([]domainContact.Submission, error)
	Count(ctx context.Context) (int, error)
}

// DonationStore interface for donation queries.
type DonationStore interface {
	List(ctx context.Context, filter donation.ListFilter) ([]domainDonation.Donation, error)
	Count(ctx context.Context) (int, error)
	CountByType(ctx context.Context, donationType string) (int, error)
	SumByType(ctx context.Context) (map[string]int64, error)
}

// SettingsStore interface for settings queries.
type SettingsStore interface {
	Get(ctx context.Context, key string) (domainSettings.Setting, error)
}
