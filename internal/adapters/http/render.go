package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"trust/internal/adapters/http/middleware"
	"trust/internal/application/listutil"
	"trust/internal/application/projections"
	"trust/internal/domain/donation"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
)

//go:embed templates/*.html
var templateFS embed.FS

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}

// Flash messages shown after a redirect, keyed by the ?msg= value.
var flashMessages = map[string]string{
	"created":   "Saved.",
	"updated":   "Changes saved.",
	"deleted":   "Deleted.",
	"uploaded":  "Photos uploaded.",
	"published": "Publishing status changed.",
	"password":  "Password changed.",
	"unlocked":  "Account unlocked.",
}

// redirectWithFlash redirects to path with a flash message key.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func flashFrom(r *http.Request) string {
	return flashMessages[r.URL.Query().Get("msg")]
}

// hostOf returns the host part of an absolute URL, or the input if it does not parse.
func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"isAdmin":      func() bool { return loggedIn && middleware.IsAdmin(r.Context()) },
		"currentEmail": func() string { return sess.Email },
		"csrfField":    func() template.HTML { return csrf.TemplateField(r) },
		"csrfToken":    func() string { return csrf.Token(r) },
		"currentPath":  func() string { return r.URL.Path },
		"flash":        func() string { return flashFrom(r) },
		"siteContact": func() any {
			var st projections.SettingsStore
			if stores != nil && stores.SettingsStore != nil {
				st = stores.SettingsStore
			}
			return projections.QueryGetContactDetails(r.Context(), st)
		},
		"year": func() int { return timeNow().Year() },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"date":          func(t time.Time) string { return formatDate(t, "2 January 2006") },
		"shortDate":     func(t time.Time) string { return formatDate(t, "02 Jan 2006") },
		"isoDate":       func(t time.Time) string { return formatDate(t, event.DateLayout) },
		"activityLabel": event.ActivityLabel,
		"activitySlug":  event.ActivitySlug,
		"activityTypes": func() []string { return event.ValidActivityTypes },
		"categoryLabel": gallery.CategoryLabel,
		"categories":    func() []string { return gallery.ValidCategories },
		"donationLabel": donation.TypeLabel,
		"donationTypes": func() []string { return donation.ValidTypes },
		"rupees":        donation.FormatRupees,
		"truncate": func(s string, n int) string {
			r := []rune(s)
			if len(r) <= n {
				return s
			}
			return strings.TrimSpace(string(r[:n])) + "…"
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"pageURL": func(page int) string {
			return listutil.PageURL(r.URL.Path, r.URL.Query(), page)
		},
		"ms": func(f float64) string { return formatMs(f) },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func formatMs(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64) + " ms"
}

// renderNotFound renders the not-found page with a 404 status.
func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderTemplateStatus(w, r, http.StatusNotFound, "not_found.html", map[string]any{"Title": "Page not found"})
}
