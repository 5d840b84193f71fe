package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"trust/internal/adapters/email"
	"trust/internal/adapters/http/middleware"
	"trust/internal/adapters/http/perf"
	"trust/internal/adapters/media"
	accountStore "trust/internal/adapters/storage/account"
	auditStore "trust/internal/adapters/storage/audit"
	contactStore "trust/internal/adapters/storage/contact"
	donationStore "trust/internal/adapters/storage/donation"
	eventStore "trust/internal/adapters/storage/event"
	galleryStore "trust/internal/adapters/storage/gallery"
	newsStore "trust/internal/adapters/storage/news"
	settingsStore "trust/internal/adapters/storage/settings"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	EventStore    eventStore.Store
	PhotoStore    eventStore.PhotoStore
	GalleryStore  galleryStore.Store
	NewsStore     newsStore.Store
	ContactStore  contactStore.Store
	DonationStore donationStore.Store
	SettingsStore settingsStore.Store
	AuditStore    auditStore.Store // optional
}

// Options configures NewMux.
type Options struct {
	StaticDir          string
	BaseURL            string // absolute site URL without trailing slash, used in sitemap.xml
	CSRFKey            []byte // 32 bytes
	SecureCookies      bool
	RateLimitPerSecond float64
	SlowRequestMs      int
}

// ErrInvalidCSRFKey is returned when a configured CSRF key is not 32 hex-encoded bytes.
var ErrInvalidCSRFKey = errors.New("TRUST_CSRF_KEY must be 64 hex characters (32 bytes)")

// DecodeCSRFKey decodes the hex CSRF secret. An empty key yields a random one,
// which means form tokens do not survive a restart.
func DecodeCSRFKey(keyHex string) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrInvalidCSRFKey
		}
		return key, nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("csrf_key_generated", "reason", "TRUST_CSRF_KEY not set; form tokens will not survive a restart")
	return key, nil
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance (set by NewMux)
var sessions middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// siteBaseURL is the absolute URL used for sitemap entries.
var siteBaseURL = "https://vasanthamtrust.com"

// captchaCodec signs contact form captcha tokens.
var captchaCodec = newCaptchaCodec(securecookie.GenerateRandomKey(32))

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender = email.NewNoopSender()

// emailFromAddress is the sender of contact notifications.
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// Global media host (set by SetMediaHost)
var mediaHost media.Host = media.DisabledHost{}

// mediaRootFolder is the top-level folder for every upload.
var mediaRootFolder string

// SetMediaHost sets the image host used by uploads and deletions.
func SetMediaHost(host media.Host, rootFolder string) {
	mediaHost = host
	mediaRootFolder = rootFolder
}

// NewMux wires HTTP handlers for the site.
func NewMux(opts Options, s *Stores, collector *perf.Collector, sessionStore middleware.SessionStore) http.Handler {
	stores = s
	perfCollector = collector
	sessions = sessionStore
	middleware.SecureCookies = opts.SecureCookies
	if opts.BaseURL != "" {
		siteBaseURL = opts.BaseURL
	}
	if len(opts.CSRFKey) > 0 {
		// Derived so the captcha key differs from the CSRF key but is stable across restarts.
		sum := sha256.Sum256(append([]byte("captcha:"), opts.CSRFKey...))
		captchaCodec = newCaptchaCodec(sum[:])
	}

	mux := http.NewServeMux()
	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "static"
	}
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// Rate limiter: requests per second per IP
	rate := int(math.Ceil(opts.RateLimitPerSecond))
	if rate <= 0 {
		rate = 10
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	var trusted []string
	if opts.BaseURL != "" {
		trusted = append(trusted, hostOf(opts.BaseURL))
	}

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, trusted),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequestMs),
	)
}
