package projections

import (
	"context"
	"errors"

	"trust/internal/adapters/storage/event"
	domainEvent "trust/internal/domain/event"
)

// GetActivityEventsQuery carries input for the activity listing.
type GetActivityEventsQuery struct {
	ActivityType string // empty lists every activity
	Filter       domainEvent.DateFilter
	PreviewLimit int // photos per event; zero uses domainEvent.PreviewLimit
}

// GetActivityEventsDeps holds dependencies for the activity listing.
type GetActivityEventsDeps struct {
	EventStore EventStore
	PhotoStore PhotoStore
}

// EventWithPhotos is one listed event with a truncated photo preview.
type EventWithPhotos struct {
	Event      domainEvent.Event
	Photos     []domainEvent.Photo
	PhotoCount int
	HasMore    bool // more photos than the preview shows
}

// ActivityEventsResult carries the output of the activity listing.
type ActivityEventsResult struct {
	ActivityType string
	Label        string
	Filter       domainEvent.DateFilter
	Events       []EventWithPhotos
}

// QueryGetActivityEvents lists events of one activity type, newest first,
// narrowed by an optional year or month. Each event carries at most
// PreviewLimit photos.
// PRE: ActivityType empty or known
// POST: Events ordered by event date descending
func QueryGetActivityEvents(ctx context.Context, query GetActivityEventsQuery, deps GetActivityEventsDeps) (ActivityEventsResult, error) {
	if query.ActivityType != "" && !domainEvent.IsValidActivityType(query.ActivityType) {
		return ActivityEventsResult{}, domainEvent.ErrInvalidActivityType
	}
	limit := query.PreviewLimit
	if limit <= 0 {
		limit = domainEvent.PreviewLimit
	}

	filter := event.ListFilter{ActivityType: query.ActivityType}
	if from, to, ok := query.Filter.Range(); ok {
		filter.From, filter.To = from, to
	}
	events, err := deps.EventStore.List(ctx, filter)
	if err != nil {
		return ActivityEventsResult{}, err
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	photos, err := deps.PhotoStore.ListPhotosForEvents(ctx, ids)
	if err != nil {
		return ActivityEventsResult{}, err
	}

	result := ActivityEventsResult{
		ActivityType: query.ActivityType,
		Label:        domainEvent.ActivityLabel(query.ActivityType),
		Filter:       query.Filter,
		Events:       make([]EventWithPhotos, 0, len(events)),
	}
	for _, e := range events {
		all := photos[e.ID]
		preview := all
		if len(preview) > limit {
			preview = preview[:limit]
		}
		result.Events = append(result.Events, EventWithPhotos{
			Event:      e,
			Photos:     preview,
			PhotoCount: len(all),
			HasMore:    len(all) > limit,
		})
	}
	return result, nil
}

// EventPhotosResult carries one event and all of its photos.
type EventPhotosResult struct {
	Event  domainEvent.Event
	Photos []domainEvent.Photo
}

// ErrEventNotFound is returned when the requested event does not exist.
var ErrEventNotFound = errors.New("event not found")

// QueryGetEventPhotos returns an event with its full photo list, newest first.
// POST: ErrEventNotFound wraps the store's not-found error
func QueryGetEventPhotos(ctx context.Context, eventID string, deps GetActivityEventsDeps) (EventPhotosResult, error) {
	e, err := deps.EventStore.GetByID(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return EventPhotosResult{}, errors.Join(ErrEventNotFound, err)
		}
		return EventPhotosResult{}, err
	}
	photos, err := deps.PhotoStore.ListPhotos(ctx, eventID)
	if err != nil {
		return EventPhotosResult{}, err
	}
	return EventPhotosResult{Event: e, Photos: photos}, nil
}

// AdminEventRow is one event in the admin list.
type AdminEventRow struct {
	Event      domainEvent.Event
	PhotoCount int
}

// QueryGetAdminEvents lists every event with its photo count.
func QueryGetAdminEvents(ctx context.Context, activityType string, deps GetActivityEventsDeps) ([]AdminEventRow, error) {
	events, err := deps.EventStore.List(ctx, event.ListFilter{ActivityType: activityType})
	if err != nil {
		return nil, err
	}
	counts, err := deps.PhotoStore.CountPhotosByEvent(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]AdminEventRow, len(events))
	for i, e := range events {
		rows[i] = AdminEventRow{Event: e, PhotoCount: counts[e.ID]}
	}
	return rows, nil
}
