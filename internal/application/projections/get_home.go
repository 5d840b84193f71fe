package projections

import (
	"context"
	"log/slog"

	"trust/internal/adapters/storage/event"
	domainEvent "trust/internal/domain/event"
	domainNews "trust/internal/domain/news"
	"trust/internal/domain/settings"
)

// Home page section sizes.
const (
	HomeNewsLimit   = 3
	HomeEventsLimit = 3
)

// GetHomeDeps holds dependencies for the home projection.
type GetHomeDeps struct {
	EventStore    EventStore
	PhotoStore    PhotoStore
	GalleryStore  GalleryStore
	NewsStore     NewsStore
	SettingsStore SettingsStore
}

// HomeResult carries the output of the home projection.
type HomeResult struct {
	EventCount   int
	PhotoCount   int
	GalleryCount int
	LatestNews   []domainNews.Post
	RecentEvents []domainEvent.Event
	Contact      settings.ContactDetails
}

// QueryGetHome gathers the home page. Each section degrades to empty on a
// read error so the page always renders.
func QueryGetHome(ctx context.Context, deps GetHomeDeps) HomeResult {
	var r HomeResult
	var err error
	if r.EventCount, err = deps.EventStore.Count(ctx); err != nil {
		logSectionFailed("event_count", err)
	}
	if r.PhotoCount, err = deps.PhotoStore.CountPhotos(ctx); err != nil {
		logSectionFailed("photo_count", err)
	}
	if r.GalleryCount, err = deps.GalleryStore.Count(ctx); err != nil {
		logSectionFailed("gallery_count", err)
	}
	if r.LatestNews, err = QueryGetPublishedNews(ctx, HomeNewsLimit, deps.NewsStore); err != nil {
		logSectionFailed("latest_news", err)
	}
	if r.RecentEvents, err = deps.EventStore.List(ctx, event.ListFilter{Limit: HomeEventsLimit}); err != nil {
		logSectionFailed("recent_events", err)
	}
	r.Contact = QueryGetContactDetails(ctx, deps.SettingsStore)
	return r
}

func logSectionFailed(section string, err error) {
	slog.Warn("page_section_failed", "page", "home", "section", section, "error", err)
}
