package audit_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"trust/internal/adapters/storage"
	auditstore "trust/internal/adapters/storage/audit"
	domain "trust/internal/domain/audit"
)

func openStore(t *testing.T) *auditstore.SQLiteStore {
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
	return auditstore.NewSQLiteStore(db)
}

// TestSQLiteStore_ListRecent tests newest-first ordering and the limit.
func TestSQLiteStore_ListRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		e := domain.Entry{
			ID:         fmt.Sprintf("a%d", i),
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Action:     "event_created",
			ActorID:    "acct-1",
			ActorEmail: "admin@vasanthamtrust.com",
			ActorRole:  "admin",
			TargetID:   fmt.Sprintf("e%d", i),
			IPAddress:  "10.0.0.1",
		}
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save(%d): %v", i, err)
		}
	}

	got, err := s.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != "a3" || got[2].ID != "a1" {
		t.Errorf("order = %s,%s,%s; want a3,a2,a1", got[0].ID, got[1].ID, got[2].ID)
	}
	if !got[0].Timestamp.Equal(base.Add(3*time.Minute)) || got[0].TargetID != "e3" {
		t.Errorf("round trip lost data: %+v", got[0])
	}

	all, err := s.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecent(0): %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d entries, want 4", len(all))
	}
}
