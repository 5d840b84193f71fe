package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"trust/internal/adapters/media"
	"trust/internal/domain/event"
)

// EventStoreForOrchestrator defines the store interface needed by event orchestrators.
type EventStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
}

// ErrEventIDRequired is returned when an event operation has no target.
var ErrEventIDRequired = errors.New("event ID is required")

// EventInput carries the editable fields of an event as submitted by the admin form.
type EventInput struct {
	Title        string
	Description  string
	ActivityType string
	Location     string
	EventDate    string // YYYY-MM-DD
}

func (in EventInput) apply(e *event.Event) error {
	e.Title = strings.TrimSpace(in.Title)
	e.Description = strings.TrimSpace(in.Description)
	e.ActivityType = strings.TrimSpace(in.ActivityType)
	e.Location = strings.TrimSpace(in.Location)
	date, err := event.ParseDate(in.EventDate)
	if err != nil {
		return err
	}
	e.EventDate = date
	return nil
}

// --- Create Event ---

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates a new event.
// PRE: all fields non-empty; activity type known; date is YYYY-MM-DD
// POST: Event persisted with generated ID
func ExecuteCreateEvent(ctx context.Context, input EventInput, deps CreateEventDeps) (event.Event, error) {
	e := event.Event{ID: deps.GenerateID(), CreatedAt: deps.Now()}
	if err := input.apply(&e); err != nil {
		return event.Event{}, err
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "activity_type", e.ActivityType)
	return e, nil
}

// --- Update Event ---

// UpdateEventDeps holds dependencies for UpdateEvent.
type UpdateEventDeps struct {
	EventStore EventStoreForOrchestrator
	Now        func() time.Time
}

// ExecuteUpdateEvent overwrites the editable fields of an event. Last writer wins.
// PRE: event exists
// POST: fields replaced, UpdatedAt set, CreatedAt preserved
func ExecuteUpdateEvent(ctx context.Context, id string, input EventInput, deps UpdateEventDeps) (event.Event, error) {
	if id == "" {
		return event.Event{}, ErrEventIDRequired
	}
	e, err := deps.EventStore.GetByID(ctx, id)
	if err != nil {
		return event.Event{}, err
	}
	if err := input.apply(&e); err != nil {
		return event.Event{}, err
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	e.UpdatedAt = deps.Now()
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_updated", "event_id", e.ID)
	return e, nil
}

// --- Delete Event ---

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForOrchestrator
	PhotoStore EventPhotoStoreForOrchestrator
	Host       media.Host
}

// ExecuteDeleteEvent deletes an event and, through the store cascade, its photos.
// Hosted images of those photos are destroyed afterwards on a best-effort basis.
// PRE: event exists
// POST: event and its photos gone; hosted assets purged where possible
func ExecuteDeleteEvent(ctx context.Context, id string, deps DeleteEventDeps) error {
	if id == "" {
		return ErrEventIDRequired
	}
	photos, err := deps.PhotoStore.ListPhotos(ctx, id)
	if err != nil {
		return err
	}
	if err := deps.EventStore.Delete(ctx, id); err != nil {
		return err
	}

	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.PublicID)
	}
	purged := PurgeAssets(ctx, deps.Host, ids)

	slog.Info("event_event", "event", "event_deleted", "event_id", id, "photos", len(photos), "assets_purged", purged)
	return nil
}

// --- Add Event Photo (pasted URL) ---

// AddEventPhotoInput carries input for AddEventPhoto.
type AddEventPhotoInput struct {
	EventID  string
	ImageURL string
	Caption  string
}

// AddEventPhotoDeps holds dependencies for AddEventPhoto.
type AddEventPhotoDeps struct {
	EventStore EventStoreForOrchestrator
	PhotoStore EventPhotoStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAddEventPhoto attaches an externally hosted image to an event.
// PRE: event exists; ImageURL is http(s)
// POST: Photo persisted with an empty PublicID
func ExecuteAddEventPhoto(ctx context.Context, input AddEventPhotoInput, deps AddEventPhotoDeps) (event.Photo, error) {
	if input.EventID == "" {
		return event.Photo{}, ErrEventIDRequired
	}
	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return event.Photo{}, err
	}
	p := event.Photo{
		ID:        deps.GenerateID(),
		EventID:   input.EventID,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		Caption:   strings.TrimSpace(input.Caption),
		CreatedAt: deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return event.Photo{}, err
	}
	if err := deps.PhotoStore.SavePhotos(ctx, []event.Photo{p}); err != nil {
		return event.Photo{}, err
	}

	slog.Info("event_event", "event", "photo_added", "event_id", p.EventID, "photo_id", p.ID)
	return p, nil
}

// --- Delete Event Photo ---

// DeleteEventPhotoDeps holds dependencies for DeleteEventPhoto.
type DeleteEventPhotoDeps struct {
	PhotoStore EventPhotoStoreForOrchestrator
	Host       media.Host
}

// ExecuteDeleteEventPhoto removes one photo and destroys its hosted image if it has one.
// It returns the photo's event ID so the caller can redirect back to it.
// PRE: photo exists
// POST: photo gone; asset purged where possible
func ExecuteDeleteEventPhoto(ctx context.Context, photoID string, deps DeleteEventPhotoDeps) (string, error) {
	if photoID == "" {
		return "", errors.New("photo ID is required")
	}
	p, err := deps.PhotoStore.GetPhoto(ctx, photoID)
	if err != nil {
		return "", err
	}
	if err := deps.PhotoStore.DeletePhoto(ctx, photoID); err != nil {
		return "", err
	}
	PurgeAssets(ctx, deps.Host, []string{p.PublicID})

	slog.Info("event_event", "event", "photo_deleted", "event_id", p.EventID, "photo_id", p.ID)
	return p.EventID, nil
}
