package storage

import (
	"database/sql"
	"fmt"
)

// migrations holds the ordered schema migrations. Version n is applied when
// the stored schema version is below n. Never edit an existing entry; append.
var migrations = []string{
	// v1: initial schema
	`
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		manager INTEGER NOT NULL,
		FOREIGN KEY (manager) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS players (
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		team TEXT NOT NULL,
		FOREIGN KEY (team) REFERENCES teams(code) ON DELETE CASCADE
	);
	`,
}

// MigrateDB applies any pending schema migrations.
// PRE: db is a valid connection opened with foreign_keys(ON)
// POST: Schema is at LatestSchemaVersion
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear schema_version: %w", err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", i+1); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version, 0 for a fresh database.
// PRE: schema_version table exists
// POST: Returns the recorded version
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// LatestSchemaVersion returns the version the schema reaches after all
// migrations are applied.
func LatestSchemaVersion() int {
	return len(migrations)
}
