package web

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"trust/internal/adapters/http/middleware"
	"trust/internal/application/listutil"
	"trust/internal/application/orchestrators"
	"trust/internal/application/projections"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
	"trust/internal/domain/news"
	"trust/internal/domain/settings"
)

// adminInputErrors are the domain errors whose messages are shown on admin forms.
var adminInputErrors = []error{
	event.ErrEmptyTitle, event.ErrEmptyDescription, event.ErrEmptyLocation,
	event.ErrInvalidActivityType, event.ErrInvalidDate, event.ErrFieldTooLong,
	event.ErrEmptyEventID, event.ErrInvalidImageURL,
	gallery.ErrEmptyTitle, gallery.ErrInvalidImageURL, gallery.ErrInvalidCategory, gallery.ErrFieldTooLong,
	news.ErrEmptyTitle, news.ErrEmptyExcerpt, news.ErrFieldTooLong,
	settings.ErrInvalidEmail, settings.ErrInvalidIFSC, settings.ErrInvalidUPI,
	settings.ErrInvalidQRCodeURL, settings.ErrFieldTooLong,
}

func isInputError(err error) bool {
	for _, target := range adminInputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// requirePost rejects anything but POST with 405.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// logAdminAction records who changed what in the log and, when configured,
// the activity log. A failed audit write never fails the request.
func logAdminAction(r *http.Request, action, targetID string) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	slog.Info("admin_event", "event", action, "target_id", targetID, "email", sess.Email)
	if stores == nil || stores.AuditStore == nil {
		return
	}
	_, err := orchestrators.ExecuteRecordAdminAction(r.Context(), orchestrators.RecordAdminActionInput{
		Action:     action,
		TargetID:   targetID,
		ActorID:    sess.AccountID,
		ActorEmail: sess.Email,
		ActorRole:  sess.Role,
		IPAddress:  middleware.ClientIP(r),
	}, orchestrators.RecordAdminActionDeps{
		AuditStore: stores.AuditStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		slog.Error("admin_event", "event", "audit_write_failed", "action", action, "error", err)
	}
}

// handleAdminDashboard handles GET /admin
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	deps := projections.GetAdminDashboardDeps{
		EventStore:    stores.EventStore,
		PhotoStore:    stores.PhotoStore,
		GalleryStore:  stores.GalleryStore,
		NewsStore:     stores.NewsStore,
		ContactStore:  stores.ContactStore,
		DonationStore: stores.DonationStore,
		Now:           timeNow,
	}
	if stores.AuditStore != nil {
		deps.AuditStore = stores.AuditStore
	}
	if perfCollector != nil {
		deps.Perf = perfCollector
	}
	result, err := projections.QueryGetAdminDashboard(r.Context(), deps)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"Title":       "Dashboard",
		"Dashboard":   result,
		"MediaOnline": mediaHost.Configured(),
	})
}

// handleAdminContacts handles GET /admin/contacts?page=&per_page=
func handleAdminContacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	params := listutil.ParsePageParams(r.URL.Query())
	result, err := projections.QueryGetContactSubmissions(r.Context(), params, stores.ContactStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_contacts.html", map[string]any{
		"Title":  "Contact Submissions",
		"Result": result,
		"Flash":  flashFrom(r),
	})
}

// handleAdminContactDelete handles POST /admin/contacts/{id}/delete
func handleAdminContactDelete(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id := r.PathValue("id")
	if err := stores.ContactStore.Delete(r.Context(), id); err != nil && !isNotFound(err) {
		internalError(w, err)
		return
	}
	logAdminAction(r, "contact_deleted", id)
	redirectWithFlash(w, r, "/admin/contacts", "deleted")
}

// handleAdminDonations handles GET /admin/donations?type=&page=
func handleAdminDonations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	typeFilter := r.URL.Query().Get("type")
	params := listutil.ParsePageParams(r.URL.Query())
	result, err := projections.QueryGetDonationSummary(r.Context(), typeFilter, params, stores.DonationStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_donations.html", map[string]any{
		"Title":      "Donations",
		"Result":     result,
		"TypeFilter": typeFilter,
	})
}
