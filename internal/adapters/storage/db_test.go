package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A pooled second connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after all migrations.
var expectedTables = []string{
	"players",
	"schema_version",
	"sqlite_sequence",
	"teams",
	"users",
}

// TestMigrateDB_Fresh verifies all migrations apply cleanly to an empty database.
func TestMigrateDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed on fresh db: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("tables = %v, want %v", got, expectedTables)
	}
	for i := range got {
		if got[i] != expectedTables[i] {
			t.Errorf("table[%d] = %q, want %q", i, got[i], expectedTables[i])
		}
	}
}

// TestMigrateDB_Idempotent verifies re-running migrations is a no-op.
func TestMigrateDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateDB(db); err != nil {
		t.Fatalf("first MigrateDB failed: %v", err)
	}
	if err := MigrateDB(db); err != nil {
		t.Fatalf("second MigrateDB failed: %v", err)
	}

	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != LatestSchemaVersion() {
		t.Errorf("post-migration version = %d, want %d", v, LatestSchemaVersion())
	}
}

// TestMigrateDB_UniqueConstraints verifies the uniqueness rules the
// application relies on.
func TestMigrateDB_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO users (name, username, password_hash) VALUES ('Ann', 'ann', 'h')"); err != nil {
		t.Fatalf("insert user failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO users (name, username, password_hash) VALUES ('Ann 2', 'ann', 'h')"); err == nil {
		t.Error("duplicate username insert succeeded, want UNIQUE violation")
	}

	if _, err := db.Exec("INSERT INTO teams (code, name, manager) VALUES ('T1', 'Tigers', 1)"); err != nil {
		t.Fatalf("insert team failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO teams (code, name, manager) VALUES ('T1', 'Other', 1)"); err == nil {
		t.Error("duplicate team code insert succeeded, want UNIQUE violation")
	}
}

// TestMigrateDB_CascadeDelete verifies deleting a team removes its players.
func TestMigrateDB_CascadeDelete(t *testing.T) {
	db := openTestDB(t)
	if err := MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO users (name, username, password_hash) VALUES ('Ann', 'ann', 'h')"); err != nil {
		t.Fatalf("insert user failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO teams (code, name, manager) VALUES ('T1', 'Tigers', 1)"); err != nil {
		t.Fatalf("insert team failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO players (name, notes, team) VALUES ('Sam', '', 'T1')"); err != nil {
		t.Fatalf("insert player failed: %v", err)
	}

	if _, err := db.Exec("DELETE FROM teams WHERE code = 'T1'"); err != nil {
		t.Fatalf("delete team failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM players WHERE team = 'T1'").Scan(&count); err != nil {
		t.Fatalf("count players failed: %v", err)
	}
	if count != 0 {
		t.Errorf("players after team delete = %d, want 0 (cascade)", count)
	}
}
