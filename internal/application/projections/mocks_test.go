package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

var errDBDown = errors.New("database is locked")

type mockEventStore struct {
	events     []domainEvent.Event
	photos     map[string][]domainEvent.Photo
	lastFilter event.ListFilter
	err        error
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (domainEvent.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return domainEvent.Event{}, fmt.Errorf("event %s: %w", id, sql.ErrNoRows)
}

func (m *mockEventStore) List(_ context.Context, f event.ListFilter) ([]domainEvent.Event, error) {
	m.lastFilter = f
	if m.err != nil {
		return nil, m.err
	}
	out := m.events
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockEventStore) Count(context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.events), nil
}

func (m *mockEventStore) ListPhotos(_ context.Context, eventID string) ([]domainEvent.Photo, error) {
	return m.photos[eventID], nil
}

func (m *mockEventStore) ListPhotosForEvents(_ context.Context, ids []string) (map[string][]domainEvent.Photo, error) {
	out := map[string][]domainEvent.Photo{}
	for _, id := range ids {
		if p, ok := m.photos[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockEventStore) CountPhotosByEvent(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for id, p := range m.photos {
		out[id] = len(p)
	}
	return out, nil
}

func (m *mockEventStore) CountPhotos(context.Context) (int, error) {
	n := 0
	for _, p := range m.photos {
		n += len(p)
	}
	return n, nil
}

type mockGalleryStore struct {
	images     []domainGallery.Image
	lastFilter gallery.ListFilter
}

func (m *mockGalleryStore) GetByID(_ context.Context, id string) (domainGallery.Image, error) {
	for _, img := range m.images {
		if img.ID == id {
			return img, nil
		}
	}
	return domainGallery.Image{}, sql.ErrNoRows
}

func (m *mockGalleryStore) List(_ context.Context, f gallery.ListFilter) ([]domainGallery.Image, error) {
	m.lastFilter = f
	var out []domainGallery.Image
	for _, img := range m.images {
		if f.Category == "" || img.Category == f.Category {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *mockGalleryStore) Count(context.Context) (int, error) { return len(m.images), nil }

type mockNewsStore struct {
	posts []domainNews.Post
}

func (m *mockNewsStore) GetByID(_ context.Context, id string) (domainNews.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domainNews.Post{}, sql.ErrNoRows
}

func (m *mockNewsStore) List(_ context.Context, f news.ListFilter) ([]domainNews.Post, error) {
	var out []domainNews.Post
	for _, p := range m.posts {
		if f.PublishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockNewsStore) Count(context.Context) (int, error) { return len(m.posts), nil }

type mockContactStore struct {
	subs []domainContact.Submission
}

func (m *mockContactStore) List(_ context.Context, f contact.ListFilter) ([]domainContact.Submission, error) {
	if f.Offset >= len(m.subs) {
		return nil, nil
	}
	out := m.subs[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockContactStore) Count(context.Context) (int, error) { return len(m.subs), nil }

type mockDonationStore struct {
	donations []domainDonation.Donation
}

func (m *mockDonationStore) List(_ context.Context, f donation.ListFilter) ([]domainDonation.Donation, error) {
	var out []domainDonation.Donation
	for _, d := range m.donations {
		if f.Type == "" || d.Type == f.Type {
			out = append(out, d)
		}
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockDonationStore) Count(context.Context) (int, error) { return len(m.donations), nil }

func (m *mockDonationStore) CountByType(_ context.Context, t string) (int, error) {
	n := 0
	for _, d := range m.donations {
		if t == "" || d.Type == t {
			n++
		}
	}
	return n, nil
}

func (m *mockDonationStore) SumByType(context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, d := range m.donations {
		out[d.Type] += d.AmountPaise
	}
	return out, nil
}

type mockSettingsStore struct {
	rows map[string]string
	err  error
}

func (m *mockSettingsStore) Get(_ context.Context, key string) (domainSettings.Setting, error) {
	if m.err != nil {
		return domainSettings.Setting{}, m.err
	}
	v, ok := m.rows[key]
	if !ok {
		return domainSettings.Setting{}, fmt.Errorf("setting %s: %w", key, sql.ErrNoRows)
	}
	return domainSettings.Setting{Key: key, Value: []byte(v)}, nil
}
