package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	playerStore "teamroster/internal/adapters/storage/player"
	"teamroster/internal/domain/player"
)

// PlayerStoreForAdd defines the store interface needed by AddPlayer.
type PlayerStoreForAdd interface {
	Insert(ctx context.Context, value player.Player) error
}

// AddPlayerInput carries input for the add-player orchestrator.
type AddPlayerInput struct {
	Name     string
	Notes    string
	TeamCode string
}

// AddPlayerDeps holds dependencies for AddPlayer.
type AddPlayerDeps struct {
	PlayerStore PlayerStoreForAdd
}

// ErrTeamNotFound is returned when the target team code does not exist.
var ErrTeamNotFound = errors.New("team not found")

// ExecuteAddPlayer sanitizes input and adds a player to a team's roster.
// PRE: TeamCode comes from the request path
// POST: Player is persisted against the team code
func ExecuteAddPlayer(ctx context.Context, input AddPlayerInput, deps AddPlayerDeps) error {
	p := player.Player{
		Name:  input.Name,
		Notes: input.Notes,
		Team:  input.TeamCode,
	}
	p.Sanitize()

	if err := p.Validate(); err != nil {
		return err
	}

	if err := deps.PlayerStore.Insert(ctx, p); err != nil {
		if errors.Is(err, playerStore.ErrUnknownTeam) {
			return ErrTeamNotFound
		}
		return err
	}

	slog.Info("team_event", "event", "player_added", "team", input.TeamCode, "player", p.Name)

	return nil
}
