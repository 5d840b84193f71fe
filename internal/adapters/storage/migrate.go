package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations is the ordered chain applied by MigrateDB.
// Never edit a released step; append a new one instead.
var migrations = []migration{
	{
		version: 1,
		name:    "baseline",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS account (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL,
				created_at TEXT NOT NULL,
				failed_logins INTEGER NOT NULL DEFAULT 0,
				locked_until TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS events (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT NOT NULL,
				activity_type TEXT NOT NULL CHECK (activity_type IN ('elder_care', 'food_distribution', 'education', 'medical_camp')),
				location TEXT NOT NULL,
				event_date TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_events_type_date ON events (activity_type, event_date)`,
			`CREATE TABLE IF NOT EXISTS event_photos (
				id TEXT PRIMARY KEY,
				event_id TEXT NOT NULL,
				image_url TEXT NOT NULL,
				public_id TEXT NOT NULL DEFAULT '',
				caption TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_event_photos_event ON event_photos (event_id)`,
			`CREATE TABLE IF NOT EXISTS gallery (
				id TEXT PRIMARY KEY,
				image_url TEXT NOT NULL,
				public_id TEXT NOT NULL DEFAULT '',
				title TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS news (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				excerpt TEXT NOT NULL,
				body TEXT NOT NULL DEFAULT '',
				published INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				updated_at TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS contact_submissions (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT NOT NULL DEFAULT '',
				message TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS donations (
				id TEXT PRIMARY KEY,
				donor_name TEXT NOT NULL,
				donor_email TEXT NOT NULL,
				donor_phone TEXT NOT NULL DEFAULT '',
				amount_paise INTEGER NOT NULL CHECK (amount_paise > 0),
				donation_type TEXT NOT NULL DEFAULT 'general',
				message TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS site_settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
		},
	},
	{
		version: 2,
		name:    "gallery_category",
		stmts: []string{
			`ALTER TABLE gallery ADD COLUMN category TEXT NOT NULL DEFAULT ''`,
			`CREATE INDEX IF NOT EXISTS idx_gallery_category ON gallery (category, created_at)`,
		},
	},
	{
		version: 3,
		name:    "listing_indexes",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_news_published ON news (published, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_contact_created ON contact_submissions (created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_donations_created ON donations (created_at)`,
		},
	},
	{
		version: 4,
		name:    "admin_audit",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS admin_audit (
				id TEXT PRIMARY KEY,
				created_at TEXT NOT NULL,
				action TEXT NOT NULL,
				actor_id TEXT NOT NULL DEFAULT '',
				actor_email TEXT NOT NULL DEFAULT '',
				actor_role TEXT NOT NULL DEFAULT '',
				target_id TEXT NOT NULL DEFAULT '',
				ip_address TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_admin_audit_created ON admin_audit (created_at)`,
		},
	},
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, or 0 for an untracked database.
// PRE: db is a valid database connection
// POST: returns the highest recorded version
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies every pending migration, each in its own transaction.
// A file-backed database that already holds data is copied to
// <dbPath>.pre-v<N>.bak before the first pending step runs.
// PRE: db is a valid database connection
// POST: schema is at LatestSchemaVersion(), foreign keys enabled
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if current > 0 {
		if err := backupBeforeMigrate(db, dbPath, current+1); err != nil {
			return err
		}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
		slog.Info("schema_migrated", "version", m.version, "name", m.name)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %d: begin: %w", m.version, err)
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)",
		m.version, m.name, time.Now().UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("migration %d: record version: %w", m.version, err)
	}
	return tx.Commit()
}

// isDuplicateColumn lets ADD COLUMN steps re-run against a database that
// was hand-patched before versions were tracked.
func isDuplicateColumn(err error) bool {
	return strings.Contains(err.Error(), "duplicate column name")
}

func backupBeforeMigrate(db *sql.DB, dbPath string, next int) error {
	if dbPath == "" || dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:") {
		return nil
	}
	backup := fmt.Sprintf("%s.pre-v%d.bak", dbPath, next)
	if _, err := os.Stat(backup); err == nil {
		return nil
	}
	if _, err := db.Exec("VACUUM INTO ?", backup); err != nil {
		return fmt.Errorf("backup before migration: %w", err)
	}
	slog.Info("schema_backup_written", "path", backup)
	return nil
}

// timeLayout is the layout for every timestamp column.
const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime parses a stored timestamp. Unparseable values log a warning
// and yield the zero time.
func ParseTime(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	if s != "" {
		slog.Warn("unparseable_timestamp", "value", s)
	}
	return time.Time{}
}
