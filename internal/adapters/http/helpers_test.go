package web

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"trust/internal/adapters/email"
	"trust/internal/adapters/http/middleware"
	"trust/internal/adapters/media"
	"trust/internal/adapters/storage"
	accountStore "trust/internal/adapters/storage/account"
	auditStore "trust/internal/adapters/storage/audit"
	contactStore "trust/internal/adapters/storage/contact"
	donationStore "trust/internal/adapters/storage/donation"
	eventStore "trust/internal/adapters/storage/event"
	galleryStore "trust/internal/adapters/storage/gallery"
	newsStore "trust/internal/adapters/storage/news"
	settingsStore "trust/internal/adapters/storage/settings"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

var adminSession = middleware.Session{
	AccountID: "admin-001",
	Email:     "admin@vasanthamtrust.com",
	Role:      "admin",
	CreatedAt: time.Now(),
}

var editorSession = middleware.Session{
	AccountID: "editor-001",
	Email:     "editor@vasanthamtrust.com",
	Role:      "editor",
	CreatedAt: time.Now(),
}

// newTestStores opens a migrated in-memory database and sets the global stores.
func newTestStores(t *testing.T) *Stores {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	events := eventStore.NewSQLiteStore(db)
	s := &Stores{
		AccountStore:  accountStore.NewSQLiteStore(db),
		EventStore:    events,
		PhotoStore:    events,
		GalleryStore:  galleryStore.NewSQLiteStore(db),
		NewsStore:     newsStore.NewSQLiteStore(db),
		ContactStore:  contactStore.NewSQLiteStore(db),
		DonationStore: donationStore.NewSQLiteStore(db),
		SettingsStore: settingsStore.NewSQLiteStore(db),
		AuditStore:    auditStore.NewSQLiteStore(db),
	}
	stores = s
	sessions = middleware.NewMemorySessionStore()
	t.Cleanup(func() {
		SetMediaHost(media.DisabledHost{}, "")
		SetEmailSender(email.NewNoopSender(), "")
	})
	return s
}

// authRequest returns a request with the given session injected into context.
func authRequest(method, target string, body string, sess middleware.Session) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.ContextWithSession(req.Context(), sess)
	return req.WithContext(ctx)
}

// formRequest returns a url-encoded POST, with a session when sess is non-nil.
func formRequest(target string, form url.Values, sess *middleware.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sess != nil {
		req = req.WithContext(middleware.ContextWithSession(req.Context(), *sess))
	}
	return req
}

type testPart struct {
	name        string
	contentType string
	data        []byte
}

// multipartRequest builds a multipart POST with "files" parts and extra fields.
func multipartRequest(t *testing.T, target string, parts []testPart, fields map[string]string, sess *middleware.Session) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, p.name))
		h.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		w.Write(p.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if sess != nil {
		req = req.WithContext(middleware.ContextWithSession(req.Context(), *sess))
	}
	return req
}

// fakeHost records uploads and deletions in memory.
type fakeHost struct {
	mu        sync.Mutex
	uploads   int
	destroyed []string
	fail      bool
}

func (h *fakeHost) Upload(_ context.Context, req media.UploadRequest) (media.Asset, error) {
	if _, err := io.Copy(io.Discard, req.Body); err != nil {
		return media.Asset{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail {
		return media.Asset{}, errors.New("host unavailable")
	}
	h.uploads++
	id := fmt.Sprintf("%s/img-%d", req.Folder, h.uploads)
	return media.Asset{URL: "https://cdn.example.com/" + id + ".png", PublicID: id, Width: 1, Height: 1, Format: "png"}, nil
}

func (h *fakeHost) Destroy(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

func (h *fakeHost) Configured() bool { return true }

// fakeSender records notification sends.
type fakeSender struct {
	mu   sync.Mutex
	sent []email.SendRequest
	err  error
}

func (s *fakeSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	if s.err != nil {
		return email.SendResult{}, s.err
	}
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}
