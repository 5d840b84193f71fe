package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"trust/internal/adapters/email"
	web "trust/internal/adapters/http"
	"trust/internal/adapters/http/middleware"
	"trust/internal/adapters/http/perf"
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
	"trust/internal/application/orchestrators"
	"trust/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	// WAL mode, foreign keys (photo cascade) and a busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)

	events := eventStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  accountStore.NewSQLiteStore(timedDB),
		EventStore:    events,
		PhotoStore:    events,
		GalleryStore:  galleryStore.NewSQLiteStore(timedDB),
		NewsStore:     newsStore.NewSQLiteStore(timedDB),
		ContactStore:  contactStore.NewSQLiteStore(timedDB),
		DonationStore: donationStore.NewSQLiteStore(timedDB),
		SettingsStore: settingsStore.NewSQLiteStore(timedDB),
		AuditStore:    auditStore.NewSQLiteStore(timedDB),
	}

	seedDeps := orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   uuid.NewString,
		Now:          time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	configureEmail(cfg)
	configureMedia(cfg, collector)

	var sessionStore middleware.SessionStore = middleware.NewMemorySessionStore()
	if cfg.RedisURL != "" {
		rs, err := middleware.NewRedisSessionStore(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rs.Close()
		sessionStore = rs
		slog.Info("startup", "sessions", "redis")
	} else {
		slog.Info("startup", "sessions", "memory")
	}

	csrfKey, err := web.DecodeCSRFKey(cfg.CSRFKey)
	if err != nil {
		log.Fatalf("invalid CSRF key: %v", err)
	}

	mux := web.NewMux(web.Options{
		StaticDir:          cfg.StaticDir,
		BaseURL:            cfg.BaseURL,
		CSRFKey:            csrfKey,
		SecureCookies:      cfg.IsProduction(),
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		SlowRequestMs:      cfg.SlowRequestMs,
	}, stores, collector, sessionStore)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// uploads of up to ten images need the long write window
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("startup", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown", "reason", "signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func configureEmail(cfg config.Config) {
	key := cfg.EmailKey()
	if key == "" {
		web.SetEmailSender(email.NewNoopSender(), cfg.EmailFrom)
		if cfg.IsProduction() {
			slog.Warn("startup", "email", "disabled", "detail", "no API key for provider "+cfg.EmailProvider)
		} else {
			slog.Info("startup", "email", "noop")
		}
		return
	}
	switch cfg.EmailProvider {
	case config.ProviderSendGrid:
		web.SetEmailSender(email.NewSendGridSender(key, cfg.EmailFrom), cfg.EmailFrom)
	default:
		web.SetEmailSender(email.NewResendSender(key, cfg.EmailFrom), cfg.EmailFrom)
	}
	slog.Info("startup", "email", cfg.EmailProvider)
}

func configureMedia(cfg config.Config, collector *perf.Collector) {
	if !cfg.MediaConfigured() {
		web.SetMediaHost(media.DisabledHost{}, cfg.MediaRootFolder)
		slog.Warn("startup", "media", "disabled", "detail", "uploads will fail until Cloudinary credentials are set")
		return
	}
	var (
		host *media.CloudinaryHost
		err  error
	)
	if cfg.CloudinaryURL != "" {
		host, err = media.NewCloudinaryHostFromURL(cfg.CloudinaryURL, collector)
	} else {
		host, err = media.NewCloudinaryHost(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, collector)
	}
	if err != nil {
		log.Fatalf("failed to configure media host: %v", err)
	}
	web.SetMediaHost(host, cfg.MediaRootFolder)
	slog.Info("startup", "media", "cloudinary", "folder", cfg.MediaRootFolder)
}
