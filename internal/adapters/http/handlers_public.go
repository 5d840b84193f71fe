package web

import (
	"errors"
	"net/http"

	"trust/internal/application/projections"
	"trust/internal/domain/donation"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
)

// galleryCategoryForActivity maps an activity page to its gallery filter.
var galleryCategoryForActivity = map[string]string{
	event.ActivityElderCare:        gallery.CategoryElderCare,
	event.ActivityFoodDistribution: gallery.CategoryFoodDistribution,
	event.ActivityEducation:        gallery.CategoryEducation,
	event.ActivityMedicalCamp:      gallery.CategoryMedicalCamp,
}

// donationTypeForActivity maps an activity page to its donate link.
var donationTypeForActivity = map[string]string{
	event.ActivityElderCare:        donation.TypeElderCare,
	event.ActivityFoodDistribution: donation.TypeFoodDistribution,
	event.ActivityEducation:        donation.TypeEducation,
	event.ActivityMedicalCamp:      donation.TypeMedicalCamps,
}

func activityDeps() projections.GetActivityEventsDeps {
	return projections.GetActivityEventsDeps{
		EventStore: stores.EventStore,
		PhotoStore: stores.PhotoStore,
	}
}

// handleHome handles GET /
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	home := projections.QueryGetHome(r.Context(), projections.GetHomeDeps{
		EventStore:    stores.EventStore,
		PhotoStore:    stores.PhotoStore,
		GalleryStore:  stores.GalleryStore,
		NewsStore:     stores.NewsStore,
		SettingsStore: stores.SettingsStore,
	})
	renderTemplate(w, r, "home.html", map[string]any{
		"Title": "Home",
		"Home":  home,
	})
}

// handleAbout handles GET /about
func handleAbout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "about.html", map[string]any{"Title": "About Us"})
}

// handleActivities handles GET /activities
func handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "activities.html", map[string]any{"Title": "Our Activities"})
}

// handleActivityEvents handles GET /activities/{slug}?year=&month=
func handleActivityEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	activityType, ok := event.ParseActivitySlug(r.PathValue("slug"))
	if !ok {
		renderNotFound(w, r)
		return
	}
	q := r.URL.Query()
	result, err := projections.QueryGetActivityEvents(r.Context(), projections.GetActivityEventsQuery{
		ActivityType: activityType,
		Filter:       event.ParseDateFilter(q.Get("year"), q.Get("month")),
	}, activityDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "activity_events.html", map[string]any{
		"Title":           result.Label,
		"Result":          result,
		"Slug":            r.PathValue("slug"),
		"Years":           event.FilterYears(timeNow(), event.FilterStartYear),
		"Months":          monthOptions,
		"GalleryCategory": galleryCategoryForActivity[activityType],
		"DonationType":    donationTypeForActivity[activityType],
	})
}

// handleEventPhotos handles GET /activities/events/{id}/photos
func handleEventPhotos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := projections.QueryGetEventPhotos(r.Context(), r.PathValue("id"), activityDeps())
	if err != nil {
		if errors.Is(err, projections.ErrEventNotFound) {
			renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "event_photos.html", map[string]any{
		"Title":  result.Event.Title,
		"Result": result,
	})
}

// handleGallery handles GET /gallery?category=
func handleGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := projections.QueryGetGallery(r.Context(), r.URL.Query().Get("category"), stores.GalleryStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "gallery.html", map[string]any{
		"Title":  "Gallery",
		"Result": result,
	})
}

// handleNews handles GET /news
func handleNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	posts, err := projections.QueryGetPublishedNews(r.Context(), 0, stores.NewsStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "news.html", map[string]any{
		"Title": "News",
		"Posts": posts,
	})
}

// handleNotFound renders the not-found page for unmatched paths.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r)
}

type monthOption struct {
	Value string
	Label string
}

var monthOptions = []monthOption{
	{"1", "January"}, {"2", "February"}, {"3", "March"}, {"4", "April"},
	{"5", "May"}, {"6", "June"}, {"7", "July"}, {"8", "August"},
	{"9", "September"}, {"10", "October"}, {"11", "November"}, {"12", "December"},
}
