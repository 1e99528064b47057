package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "teamroster/internal/adapters/email"
	web "teamroster/internal/adapters/http"
	"teamroster/internal/adapters/storage"
	playerStore "teamroster/internal/adapters/storage/player"
	teamStore "teamroster/internal/adapters/storage/team"
	userStore "teamroster/internal/adapters/storage/user"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("ROSTER_DB", "roster.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	stores := &web.Stores{
		UserStore:   userStore.NewSQLiteStore(db),
		TeamStore:   teamStore.NewSQLiteStore(db),
		PlayerStore: playerStore.NewSQLiteStore(db),
	}

	// Configure email sender for operator notifications
	resendKey := os.Getenv("ROSTER_RESEND_KEY")
	emailFrom := envOrDefault("ROSTER_RESEND_FROM", "Team Roster <noreply@teamroster.example>")
	notifyTo := os.Getenv("ROSTER_NOTIFY_TO")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, notifyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, notifyTo)
		log.Println("Email sender configured (noop — set ROSTER_RESEND_KEY for real delivery)")
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores)

	// Start server
	addr := envOrDefault("ROSTER_ADDR", ":8080")
	log.Printf("Team Roster %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("ROSTER_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
