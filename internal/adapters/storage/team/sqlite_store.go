package team

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "teamroster/internal/domain/team"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new team store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves all teams ordered by name, as shown on the home page.
// PRE: none
// POST: Returns all teams, name ascending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Team, error) {
	query := "SELECT id, code, name, description, website, manager FROM teams ORDER BY name ASC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Team
	for rows.Next() {
		entity, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// GetByCode retrieves a Team by code, joined with its manager's name.
// PRE: code is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByCode(ctx context.Context, code string) (domain.WithManager, error) {
	query := `
		SELECT teams.id, teams.code, teams.name, teams.description,
		       teams.website, teams.manager, users.name
		FROM teams
		JOIN users ON teams.manager = users.id
		WHERE teams.code = ?`
	row := s.db.QueryRowContext(ctx, query, code)

	var entity domain.WithManager
	err := row.Scan(
		&entity.ID,
		&entity.Code,
		&entity.Name,
		&entity.Description,
		&entity.Website,
		&entity.Manager,
		&entity.ManagerName,
	)
	if err == sql.ErrNoRows {
		return domain.WithManager{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return domain.WithManager{}, err
	}
	return entity, nil
}

// Insert persists a new Team and returns its assigned id.
// A UNIQUE violation on code is reported as ErrDuplicateCode.
// PRE: entity has been validated
// POST: Entity is persisted with a fresh id
func (s *SQLiteStore) Insert(ctx context.Context, entity domain.Team) (int64, error) {
	query := "INSERT INTO teams (code, name, description, website, manager) VALUES (?, ?, ?, ?, ?)"
	res, err := s.db.ExecContext(ctx, query,
		entity.Code,
		entity.Name,
		entity.Description,
		entity.Website,
		entity.Manager,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateCode
		}
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteOwned removes a team only if it is owned by the given manager.
// Players cascade via the foreign key on players.team.
// PRE: id and managerID are non-zero
// POST: Returns the number of rows removed (0 when id/owner do not match)
func (s *SQLiteStore) DeleteOwned(ctx context.Context, id, managerID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ? AND manager = ?", id, managerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the total number of teams.
// PRE: none
// POST: Returns total team count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM teams").Scan(&count)
	return count, err
}

// scanTeam extracts a Team from a row scanner function.
func scanTeam(scan func(dest ...interface{}) error) (domain.Team, error) {
	var entity domain.Team
	err := scan(
		&entity.ID,
		&entity.Code,
		&entity.Name,
		&entity.Description,
		&entity.Website,
		&entity.Manager,
	)
	if err != nil {
		return domain.Team{}, err
	}
	return entity, nil
}
