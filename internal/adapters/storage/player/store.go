package player

import (
	"context"
	"errors"

	domain "teamroster/internal/domain/player"
)

// ErrUnknownTeam is returned when a player references a team code that
// does not exist (foreign key violation).
var ErrUnknownTeam = errors.New("unknown team code")

// Store persists Player state.
type Store interface {
	ListByTeam(ctx context.Context, teamCode string) ([]domain.Player, error)
	Insert(ctx context.Context, value domain.Player) error
	CountByTeam(ctx context.Context, teamCode string) (int, error)
}
