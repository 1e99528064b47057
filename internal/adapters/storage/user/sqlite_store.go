package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "teamroster/internal/domain/user"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id is non-zero
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query := "SELECT id, name, username, password_hash FROM users WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return entity, err
}

// GetByUsername retrieves a User by username.
// PRE: username is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query := "SELECT id, name, username, password_hash FROM users WHERE username = ?"
	row := s.db.QueryRowContext(ctx, query, username)

	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return entity, err
}

// Insert persists a new User and returns its assigned id.
// A UNIQUE violation on username is reported as ErrDuplicateUsername, which
// is the authoritative duplicate check even under concurrent registration.
// PRE: entity has been validated
// POST: Entity is persisted with a fresh id
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.User) (int64, error) {
	query := "INSERT INTO users (name, username, password_hash) VALUES (?, ?, ?)"
	res, err := s.db.ExecContext(ctx, query, entity.Name, entity.Username, entity.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

// Count returns the total number of users.
// PRE: none
// POST: Returns total user count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// CountByUsername returns the number of users with the given username.
// PRE: username is non-empty
// POST: Returns 0 or 1 (username is unique)
func (s *SQLiteStore) CountByUsername(ctx context.Context, username string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	return count, err
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...interface{}) error) (domain.User, error) {
	var entity domain.User
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Username,
		&entity.PasswordHash,
	)
	if err != nil {
		return domain.User{}, err
	}
	return entity, nil
}
