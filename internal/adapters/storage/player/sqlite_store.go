package player

import (
	"context"
	"database/sql"
	"strings"

	domain "teamroster/internal/domain/player"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new player store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListByTeam retrieves the roster for a team code.
// PRE: teamCode is non-empty
// POST: Returns all players for the team, insertion order
func (s *SQLiteStore) ListByTeam(ctx context.Context, teamCode string) ([]domain.Player, error) {
	query := "SELECT name, notes, team FROM players WHERE team = ?"
	rows, err := s.db.QueryContext(ctx, query, teamCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Player
	for rows.Next() {
		var entity domain.Player
		if err := rows.Scan(&entity.Name, &entity.Notes, &entity.Team); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Insert persists a new Player. A foreign key violation on the team code
// is reported as ErrUnknownTeam.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.Player) error {
	query := "INSERT INTO players (name, notes, team) VALUES (?, ?, ?)"
	_, err := s.db.ExecContext(ctx, query, entity.Name, entity.Notes, entity.Team)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return ErrUnknownTeam
	}
	return err
}

// CountByTeam returns the roster size for a team code.
// PRE: teamCode is non-empty
// POST: Returns player count for the team
func (s *SQLiteStore) CountByTeam(ctx context.Context, teamCode string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players WHERE team = ?", teamCode).Scan(&count)
	return count, err
}
