package orchestrators

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	emailAdapter "trust/internal/adapters/email"
	"trust/internal/adapters/media"
	"trust/internal/domain/contact"
	"trust/internal/domain/donation"
	"trust/internal/domain/event"
	"trust/internal/domain/gallery"
	"trust/internal/domain/news"
	"trust/internal/domain/settings"
)

var testTime = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func testNow() time.Time { return testTime }

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var errStoreDown = errors.New("store unavailable")

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, sql.ErrNoRows)
}

// --- events and photos ---

type mockEventStore struct {
	events       map[string]event.Event
	photos       map[string]event.Photo
	savePhotoErr error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: map[string]event.Event{}, photos: map[string]event.Photo{}}
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, notFound("event", id)
	}
	return e, nil
}

func (m *mockEventStore) Save(_ context.Context, e event.Event) error {
	m.events[e.ID] = e
	return nil
}

// Delete removes the event and its photos, like the foreign key cascade.
func (m *mockEventStore) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return notFound("event", id)
	}
	delete(m.events, id)
	for pid, p := range m.photos {
		if p.EventID == id {
			delete(m.photos, pid)
		}
	}
	return nil
}

func (m *mockEventStore) GetPhoto(_ context.Context, id string) (event.Photo, error) {
	p, ok := m.photos[id]
	if !ok {
		return event.Photo{}, notFound("photo", id)
	}
	return p, nil
}

func (m *mockEventStore) SavePhotos(_ context.Context, photos []event.Photo) error {
	if m.savePhotoErr != nil {
		return m.savePhotoErr
	}
	for _, p := range photos {
		if _, ok := m.events[p.EventID]; !ok {
			return errors.New("FOREIGN KEY constraint failed")
		}
	}
	for _, p := range photos {
		m.photos[p.ID] = p
	}
	return nil
}

func (m *mockEventStore) DeletePhoto(_ context.Context, id string) error {
	if _, ok := m.photos[id]; !ok {
		return notFound("photo", id)
	}
	delete(m.photos, id)
	return nil
}

func (m *mockEventStore) ListPhotos(_ context.Context, eventID string) ([]event.Photo, error) {
	var out []event.Photo
	for _, p := range m.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- media host ---

type mockHost struct {
	mu        sync.Mutex
	uploads   []string // folders of successful uploads
	calls     int
	destroyed []string
	failNames map[string]bool
}

func newMockHost() *mockHost {
	return &mockHost{failNames: map[string]bool{}}
}

func (h *mockHost) Upload(_ context.Context, req media.UploadRequest) (media.Asset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if _, err := io.Copy(io.Discard, req.Body); err != nil {
		return media.Asset{}, err
	}
	if h.failNames[req.Name] {
		return media.Asset{}, errors.New("upstream 502")
	}
	h.uploads = append(h.uploads, req.Folder)
	id := req.Folder + "/" + req.Name
	return media.Asset{URL: "https://res.cloudinary.com/demo/image/upload/" + id, PublicID: id, Width: 800, Height: 600}, nil
}

func (h *mockHost) Destroy(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

func (h *mockHost) Configured() bool { return true }

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func memFile(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// --- email ---

type mockSender struct {
	err   error
	calls []emailAdapter.SendRequest
}

func (s *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return emailAdapter.SendResult{}, s.err
	}
	return emailAdapter.SendResult{MessageID: "msg-1", SentAt: testTime}, nil
}

// --- contact ---

type mockContactStore struct {
	saved []contact.Submission
	err   error
}

func (m *mockContactStore) Save(_ context.Context, s contact.Submission) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, s)
	return nil
}

// --- settings ---

type mockSettingsStore struct {
	rows   map[string]settings.Setting
	getErr error
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{rows: map[string]settings.Setting{}}
}

func (m *mockSettingsStore) Get(_ context.Context, key string) (settings.Setting, error) {
	if m.getErr != nil {
		return settings.Setting{}, m.getErr
	}
	s, ok := m.rows[key]
	if !ok {
		return settings.Setting{}, notFound("setting", key)
	}
	return s, nil
}

func (m *mockSettingsStore) Upsert(_ context.Context, s settings.Setting) error {
	m.rows[s.Key] = s
	return nil
}

func (m *mockSettingsStore) withNotificationEmail(addr string) *mockSettingsStore {
	raw, _ := settings.Encode(settings.ContactDetails{Version: 1, NotificationEmail: addr})
	m.rows[settings.KeyContactDetails] = settings.Setting{Key: settings.KeyContactDetails, Value: raw}
	return m
}

// --- gallery ---

type mockGalleryStore struct {
	images  map[string]gallery.Image
	saveErr error
}

func newMockGalleryStore() *mockGalleryStore {
	return &mockGalleryStore{images: map[string]gallery.Image{}}
}

func (m *mockGalleryStore) GetByID(_ context.Context, id string) (gallery.Image, error) {
	img, ok := m.images[id]
	if !ok {
		return gallery.Image{}, notFound("image", id)
	}
	return img, nil
}

func (m *mockGalleryStore) Save(_ context.Context, img gallery.Image) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.images[img.ID] = img
	return nil
}

func (m *mockGalleryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.images[id]; !ok {
		return notFound("image", id)
	}
	delete(m.images, id)
	return nil
}

// --- news ---

type mockNewsStore struct {
	posts map[string]news.Post
	saves int
}

func newMockNewsStore() *mockNewsStore {
	return &mockNewsStore{posts: map[string]news.Post{}}
}

func (m *mockNewsStore) GetByID(_ context.Context, id string) (news.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return news.Post{}, notFound("news", id)
	}
	return p, nil
}

func (m *mockNewsStore) Save(_ context.Context, p news.Post) error {
	m.saves++
	m.posts[p.ID] = p
	return nil
}

func (m *mockNewsStore) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return notFound("news", id)
	}
	delete(m.posts, id)
	return nil
}

// --- donations ---

type mockDonationStore struct {
	saved []donation.Donation
}

func (m *mockDonationStore) Save(_ context.Context, d donation.Donation) error {
	m.saved = append(m.saved, d)
	return nil
}
