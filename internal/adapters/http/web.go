package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"teamroster/internal/adapters/email"
	"teamroster/internal/adapters/http/middleware"
	playerStore "teamroster/internal/adapters/storage/player"
	teamStore "teamroster/internal/adapters/storage/team"
	userStore "teamroster/internal/adapters/storage/user"
)

// Stores holds all storage dependencies.
type Stores struct {
	UserStore   userStore.Store
	TeamStore   teamStore.Store
	PlayerStore playerStore.Store
}

// loadCSRFKey reads the CSRF secret from ROSTER_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ROSTER_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ROSTER_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ROSTER_ENV") == "production" {
		log.Fatal("ROSTER_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set ROSTER_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// SanitizeWebsite controls whether team website URLs are HTML-escaped before
// storage. Off by default; set ROSTER_SANITIZE_WEBSITE=true to enable.
var SanitizeWebsite = false

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var notifyAddress string

// SetEmailSender sets the global email sender for the application.
// notifyTo receives operator notifications (e.g. new registrations).
func SetEmailSender(sender email.Sender, from, notifyTo string) {
	emailSender = sender
	emailFromAddress = from
	notifyAddress = notifyTo
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("ROSTER_ENV") == "production"
	SanitizeWebsite = os.Getenv("ROSTER_SANITIZE_WEBSITE") == "true"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Flash -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.Flash(),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
