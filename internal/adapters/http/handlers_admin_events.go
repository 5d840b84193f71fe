package web

import (
	"errors"
	"net/http"

	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/event"
	"trust/internal/domain/upload"
)

func eventInputFromForm(r *http.Request) orchestrators.EventInput {
	return orchestrators.EventInput{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		ActivityType: r.FormValue("activity_type"),
		Location:     r.FormValue("location"),
		EventDate:    r.FormValue("event_date"),
	}
}

func renderEventForm(w http.ResponseWriter, r *http.Request, status int, id string, input orchestrators.EventInput, formErr string) {
	title := "New Event"
	if id != "" {
		title = "Edit Event"
	}
	renderTemplateStatus(w, r, status, "admin_event_form.html", map[string]any{
		"Title":   title,
		"EventID": id,
		"Input":   input,
		"Error":   formErr,
	})
}

// handleAdminEvents handles GET /admin/events?type=
func handleAdminEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	activityType := r.URL.Query().Get("type")
	if !event.IsValidActivityType(activityType) {
		activityType = ""
	}
	rows, err := projections.QueryGetAdminEvents(r.Context(), activityType, activityDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_events.html", map[string]any{
		"Title":        "Events",
		"Rows":         rows,
		"ActivityType": activityType,
		"Flash":        flashFrom(r),
	})
}

// handleAdminEventNew handles GET /admin/events/new and POST /admin/events/new
func handleAdminEventNew(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		input := orchestrators.EventInput{ActivityType: r.URL.Query().Get("type")}
		renderEventForm(w, r, http.StatusOK, "", input, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := eventInputFromForm(r)
		e, err := orchestrators.ExecuteCreateEvent(r.Context(), input, orchestrators.CreateEventDeps{
			EventStore: stores.EventStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			if isInputError(err) {
				renderEventForm(w, r, http.StatusBadRequest, "", input, err.Error())
				return
			}
			internalError(w, err)
			return
		}
		logAdminAction(r, "event_created", e.ID)
		redirectWithFlash(w, r, "/admin/events/"+e.ID+"/photos", "created")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminEventEdit handles GET /admin/events/{id} and POST /admin/events/{id}
func handleAdminEventEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		e, err := stores.EventStore.GetByID(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				renderNotFound(w, r)
				return
			}
			internalError(w, err)
			return
		}
		renderEventForm(w, r, http.StatusOK, id, orchestrators.EventInput{
			Title:        e.Title,
			Description:  e.Description,
			ActivityType: e.ActivityType,
			Location:     e.Location,
			EventDate:    e.DateString(),
		}, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input := eventInputFromForm(r)
		_, err := orchestrators.ExecuteUpdateEvent(r.Context(), id, input, orchestrators.UpdateEventDeps{
			EventStore: stores.EventStore,
			Now:        timeNow,
		})
		if err != nil {
			switch {
			case isNotFound(err):
				renderNotFound(w, r)
			case isInputError(err):
				renderEventForm(w, r, http.StatusBadRequest, id, input, err.Error())
			default:
				internalError(w, err)
			}
			return
		}
		logAdminAction(r, "event_updated", id)
		redirectWithFlash(w, r, "/admin/events", "updated")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminEventDelete handles POST /admin/events/{id}/delete
func handleAdminEventDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	err := orchestrators.ExecuteDeleteEvent(r.Context(), id, orchestrators.DeleteEventDeps{
		EventStore: stores.EventStore,
		PhotoStore: stores.PhotoStore,
		Host:       mediaHost,
	})
	if err != nil && !isNotFound(err) {
		internalError(w, err)
		return
	}
	logAdminAction(r, "event_deleted", id)
	redirectWithFlash(w, r, "/admin/events", "deleted")
}

func renderAdminEventPhotos(w http.ResponseWriter, r *http.Request, status int, eventID, formErr string) {
	result, err := projections.QueryGetEventPhotos(r.Context(), eventID, activityDeps())
	if err != nil {
		if errors.Is(err, projections.ErrEventNotFound) {
			renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_event_photos.html", map[string]any{
		"Title":       "Photos: " + result.Event.Title,
		"Result":      result,
		"Error":       formErr,
		"Flash":       flashFrom(r),
		"MediaOnline": mediaHost.Configured(),
	})
}

// handleAdminEventPhotos handles GET /admin/events/{id}/photos and POST (add by URL)
func handleAdminEventPhotos(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		renderAdminEventPhotos(w, r, http.StatusOK, id, "")
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		p, err := orchestrators.ExecuteAddEventPhoto(r.Context(), orchestrators.AddEventPhotoInput{
			EventID:  id,
			ImageURL: r.FormValue("image_url"),
			Caption:  r.FormValue("caption"),
		}, orchestrators.AddEventPhotoDeps{
			EventStore: stores.EventStore,
			PhotoStore: stores.PhotoStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			switch {
			case isNotFound(err):
				renderNotFound(w, r)
			case isInputError(err):
				renderAdminEventPhotos(w, r, http.StatusBadRequest, id, err.Error())
			default:
				internalError(w, err)
			}
			return
		}
		logAdminAction(r, "event_photo_added", p.ID)
		redirectWithFlash(w, r, "/admin/events/"+id+"/photos", "created")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleAdminEventPhotosUpload handles POST /admin/events/{id}/photos/upload
func handleAdminEventPhotosUpload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	images, err := uploadImages(w, r, id, "")
	if err != nil {
		status, msg := uploadErrorStatus(err)
		var ue *upload.Error
		if !errors.As(err, &ue) || ue.Kind == upload.KindUpstream {
			msg = "Upload failed. Please try again."
		}
		renderAdminEventPhotos(w, r, status, id, msg)
		return
	}
	_, err = orchestrators.ExecuteAttachUploadedPhotos(r.Context(), orchestrators.AttachUploadedPhotosInput{
		EventID: id,
		Images:  images,
	}, orchestrators.AttachUploadedPhotosDeps{
		EventStore: stores.EventStore,
		PhotoStore: stores.PhotoStore,
		Host:       mediaHost,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		if isNotFound(err) {
			renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	logAdminAction(r, "event_photos_uploaded", id)
	redirectWithFlash(w, r, "/admin/events/"+id+"/photos", "uploaded")
}

// handleAdminEventPhotoDelete handles POST /admin/events/{id}/photos/{photoID}/delete
func handleAdminEventPhotoDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	eventID := r.PathValue("id")
	photoID := r.PathValue("photoID")
	owner, err := orchestrators.ExecuteDeleteEventPhoto(r.Context(), photoID, orchestrators.DeleteEventPhotoDeps{
		PhotoStore: stores.PhotoStore,
		Host:       mediaHost,
	})
	if err != nil && !isNotFound(err) {
		internalError(w, err)
		return
	}
	if owner != "" {
		eventID = owner
	}
	logAdminAction(r, "event_photo_deleted", photoID)
	redirectWithFlash(w, r, "/admin/events/"+eventID+"/photos", "deleted")
}
