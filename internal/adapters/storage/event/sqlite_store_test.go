package event_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"trust/internal/adapters/storage"
	eventstore "trust/internal/adapters/storage/event"
	domain "trust/internal/domain/event"
)

func openStore(t *testing.T) *eventstore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return eventstore.NewSQLiteStore(db)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func seedEvent(t *testing.T, s *eventstore.SQLiteStore, id, activity, date string) {
	t.Helper()
	e := domain.Event{
		ID:           id,
		Title:        "Event " + id,
		Description:  "desc",
		ActivityType: activity,
		Location:     "Dindigul",
		EventDate:    mustDate(t, date),
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.Save(context.Background(), e); err != nil {
		t.Fatalf("Save(%s): %v", id, err)
	}
}

// TestSQLiteStore_ListFilters tests activity and date-range filtering and ordering.
func TestSQLiteStore_ListFilters(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedEvent(t, s, "a", domain.ActivityElderCare, "2024-03-01")
	seedEvent(t, s, "b", domain.ActivityElderCare, "2024-03-31")
	seedEvent(t, s, "c", domain.ActivityElderCare, "2024-04-01")
	seedEvent(t, s, "d", domain.ActivityEducation, "2024-03-15")

	tests := []struct {
		name   string
		filter eventstore.ListFilter
		want   []string
	}{
		{name: "all newest first", want: []string{"c", "b", "d", "a"}},
		{name: "activity", filter: eventstore.ListFilter{ActivityType: domain.ActivityElderCare}, want: []string{"c", "b", "a"}},
		{
			name:   "march inclusive",
			filter: eventstore.ListFilter{ActivityType: domain.ActivityElderCare, From: mustDate(t, "2024-03-01"), To: mustDate(t, "2024-03-31")},
			want:   []string{"b", "a"},
		},
		{name: "limit", filter: eventstore.ListFilter{Limit: 2}, want: []string{"c", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, e.ID, tt.want[i])
				}
			}
		})
	}
}

// TestSQLiteStore_DeleteCascadesPhotos tests that deleting an event removes its photos.
func TestSQLiteStore_DeleteCascadesPhotos(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedEvent(t, s, "e1", domain.ActivityMedicalCamp, "2024-05-05")
	seedEvent(t, s, "e2", domain.ActivityMedicalCamp, "2024-05-06")

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	photos := []domain.Photo{
		{ID: "p1", EventID: "e1", ImageURL: "https://res.cloudinary.com/x/1.jpg", PublicID: "x/1", CreatedAt: now},
		{ID: "p2", EventID: "e1", ImageURL: "https://res.cloudinary.com/x/2.jpg", PublicID: "x/2", CreatedAt: now},
		{ID: "p3", EventID: "e2", ImageURL: "https://res.cloudinary.com/x/3.jpg", PublicID: "x/3", CreatedAt: now},
	}
	if err := s.SavePhotos(ctx, photos); err != nil {
		t.Fatalf("SavePhotos: %v", err)
	}

	counts, err := s.CountPhotosByEvent(ctx)
	if err != nil {
		t.Fatalf("CountPhotosByEvent: %v", err)
	}
	if counts["e1"] != 2 || counts["e2"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	if err := s.Delete(ctx, "e1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	left, err := s.ListPhotos(ctx, "e1")
	if err != nil {
		t.Fatalf("ListPhotos: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("photos left after cascade = %d, want 0", len(left))
	}
	total, _ := s.CountPhotos(ctx)
	if total != 1 {
		t.Errorf("CountPhotos = %d, want 1", total)
	}

	if err := s.Delete(ctx, "e1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second Delete = %v, want sql.ErrNoRows", err)
	}
}

// TestSQLiteStore_SavePhotosOrphanRollsBack tests that one bad photo aborts the batch.
func TestSQLiteStore_SavePhotosOrphanRollsBack(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedEvent(t, s, "e1", domain.ActivityEducation, "2024-06-01")

	now := time.Now().UTC()
	err := s.SavePhotos(ctx, []domain.Photo{
		{ID: "ok", EventID: "e1", ImageURL: "https://x/1.jpg", CreatedAt: now},
		{ID: "orphan", EventID: "missing", ImageURL: "https://x/2.jpg", CreatedAt: now},
	})
	if err == nil {
		t.Fatal("SavePhotos with orphan should fail")
	}
	if n, _ := s.CountPhotos(ctx); n != 0 {
		t.Errorf("CountPhotos = %d after rollback, want 0", n)
	}
}

// TestSQLiteStore_ListPhotosForEvents tests grouping photos by event.
func TestSQLiteStore_ListPhotosForEvents(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	seedEvent(t, s, "e1", domain.ActivityFoodDistribution, "2024-07-01")
	seedEvent(t, s, "e2", domain.ActivityFoodDistribution, "2024-07-02")
	now := time.Now().UTC()
	if err := s.SavePhotos(ctx, []domain.Photo{
		{ID: "p1", EventID: "e1", ImageURL: "https://x/1.jpg", CreatedAt: now},
		{ID: "p2", EventID: "e2", ImageURL: "https://x/2.jpg", CreatedAt: now},
	}); err != nil {
		t.Fatalf("SavePhotos: %v", err)
	}

	grouped, err := s.ListPhotosForEvents(ctx, []string{"e1", "e2", "none"})
	if err != nil {
		t.Fatalf("ListPhotosForEvents: %v", err)
	}
	if len(grouped["e1"]) != 1 || len(grouped["e2"]) != 1 || len(grouped["none"]) != 0 {
		t.Errorf("grouped = %v", grouped)
	}
	empty, err := s.ListPhotosForEvents(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty ids: %v, %v", empty, err)
	}
}
