package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	teamStore "teamroster/internal/adapters/storage/team"
	"teamroster/internal/domain/team"
)

// TeamStoreForCreate defines the store interface needed by CreateTeam.
type TeamStoreForCreate interface {
	Insert(ctx context.Context, value team.Team) (int64, error)
}

// CreateTeamInput carries input for the team creation orchestrator.
type CreateTeamInput struct {
	Code        string
	Name        string
	Description string
	Website     string
	ManagerID   int64

	// SanitizeWebsite opts into escaping the website field. The original app
	// escaped name and description but not website; that behavior is kept
	// unless this flag is set.
	SanitizeWebsite bool
}

// CreateTeamDeps holds dependencies for CreateTeam.
type CreateTeamDeps struct {
	TeamStore TeamStoreForCreate
}

// ErrTeamCodeExists is returned when the chosen team code is taken.
var ErrTeamCodeExists = errors.New("team code already exists")

// ExecuteCreateTeam sanitizes input and creates a team owned by the manager.
// PRE: ManagerID is the authenticated user's id
// POST: Team is persisted; returns the new team id
func ExecuteCreateTeam(ctx context.Context, input CreateTeamInput, deps CreateTeamDeps) (int64, error) {
	t := team.Team{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		Website:     input.Website,
		Manager:     input.ManagerID,
	}
	t.Sanitize(input.SanitizeWebsite)

	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := deps.TeamStore.Insert(ctx, t)
	if err != nil {
		if errors.Is(err, teamStore.ErrDuplicateCode) {
			return 0, ErrTeamCodeExists
		}
		return 0, err
	}

	slog.Info("team_event", "event", "team_created", "code", t.Code, "team_id", id, "manager", input.ManagerID)

	return id, nil
}
