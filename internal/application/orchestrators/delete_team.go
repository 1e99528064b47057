package orchestrators

import (
	"context"
	"log/slog"
)

// TeamStoreForDelete defines the store interface needed by DeleteTeam.
type TeamStoreForDelete interface {
	DeleteOwned(ctx context.Context, id, managerID int64) (int64, error)
}

// DeleteTeamInput carries input for the team deletion orchestrator.
type DeleteTeamInput struct {
	TeamID    int64
	ManagerID int64
}

// DeleteTeamDeps holds dependencies for DeleteTeam.
type DeleteTeamDeps struct {
	TeamStore TeamStoreForDelete
}

// ExecuteDeleteTeam removes a team the manager owns. A non-existent id or a
// team owned by someone else is a silent no-op: the caller flashes success
// either way and nothing about other users' teams is revealed.
// PRE: ManagerID is the authenticated user's id
// POST: Team and its players are removed iff id and owner match
func ExecuteDeleteTeam(ctx context.Context, input DeleteTeamInput, deps DeleteTeamDeps) (bool, error) {
	affected, err := deps.TeamStore.DeleteOwned(ctx, input.TeamID, input.ManagerID)
	if err != nil {
		return false, err
	}

	if affected > 0 {
		slog.Info("team_event", "event", "team_deleted", "team_id", input.TeamID, "manager", input.ManagerID)
	} else {
		slog.Info("team_event", "event", "team_delete_noop", "team_id", input.TeamID, "manager", input.ManagerID)
	}

	return affected > 0, nil
}
