// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TRUST"

// Email providers
const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
)

// ErrMissingCSRFKey is returned in production when no CSRF key is set.
var ErrMissingCSRFKey = errors.New("TRUST_CSRF_KEY must be set in production")

// Config holds every runtime setting.
type Config struct {
	Env       string
	Addr      string
	DBPath    string
	BaseURL   string
	StaticDir string
	CSRFKey   string

	AdminEmail    string
	AdminPassword string

	EmailProvider string
	ResendKey     string
	SendGridKey   string
	EmailFrom     string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MediaRootFolder     string

	RedisURL string

	SlowQueryMs        int
	SlowRequestMs      int
	RateLimitPerSecond float64
	LogLevel           string
	LogFormat          string
}

// Load reads an optional .env file and then the TRUST_* environment.
// Real environment variables win over .env entries.
// PRE: none
// POST: returns a populated Config or a validation error
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Env:       strings.ToLower(v.GetString("env")),
		Addr:      v.GetString("addr"),
		DBPath:    v.GetString("db_path"),
		BaseURL:   strings.TrimRight(v.GetString("base_url"), "/"),
		StaticDir: v.GetString("static_dir"),
		CSRFKey:   v.GetString("csrf_key"),

		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),

		EmailProvider: strings.ToLower(v.GetString("email_provider")),
		ResendKey:     v.GetString("resend_key"),
		SendGridKey:   v.GetString("sendgrid_key"),
		EmailFrom:     v.GetString("email_from"),

		CloudinaryURL:       v.GetString("cloudinary_url"),
		CloudinaryCloudName: v.GetString("cloudinary_cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary_api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary_api_secret"),
		MediaRootFolder:     v.GetString("media_root_folder"),

		RedisURL: v.GetString("redis_url"),

		SlowQueryMs:        v.GetInt("slow_query_ms"),
		SlowRequestMs:      v.GetInt("slow_request_ms"),
		RateLimitPerSecond: v.GetFloat64("rate_limit_per_second"),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		LogFormat:          strings.ToLower(v.GetString("log_format")),
	}
	if cfg.IsProduction() && cfg.CSRFKey == "" {
		return cfg, ErrMissingCSRFKey
	}
	if cfg.EmailProvider != ProviderResend && cfg.EmailProvider != ProviderSendGrid {
		return cfg, fmt.Errorf("TRUST_EMAIL_PROVIDER must be %q or %q, got %q", ProviderResend, ProviderSendGrid, cfg.EmailProvider)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "trust.db")
	v.SetDefault("base_url", "https://vasanthamtrust.com")
	v.SetDefault("static_dir", "static")
	v.SetDefault("admin_email", "admin@vasanthamtrust.com")
	v.SetDefault("admin_password", "change me before launch")
	v.SetDefault("email_provider", ProviderResend)
	v.SetDefault("email_from", "Vasantham Trust <donate@vasanthamtrust.com>")
	v.SetDefault("media_root_folder", "vasantham_trust")
	v.SetDefault("slow_query_ms", 50)
	v.SetDefault("slow_request_ms", 200)
	v.SetDefault("rate_limit_per_second", 10.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// IsProduction reports whether the site runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// EmailKey returns the API key for the selected provider, or "".
func (c Config) EmailKey() string {
	if c.EmailProvider == ProviderSendGrid {
		return c.SendGridKey
	}
	return c.ResendKey
}

// MediaConfigured reports whether media host credentials are present.
func (c Config) MediaConfigured() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// NewLogger builds the default slog logger from LogLevel and LogFormat.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
