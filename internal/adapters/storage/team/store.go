package team

import (
	"context"
	"errors"

	domain "teamroster/internal/domain/team"
)

// Storage errors surfaced to the application layer.
var (
	ErrNotFound      = errors.New("team not found")
	ErrDuplicateCode = errors.New("team code already taken")
)

// Store persists Team state.
type Store interface {
	List(ctx context.Context) ([]domain.Team, error)
	GetByCode(ctx context.Context, code string) (domain.WithManager, error)
	Insert(ctx context.Context, value domain.Team) (int64, error)
	DeleteOwned(ctx context.Context, id, managerID int64) (int64, error)
	Count(ctx context.Context) (int, error)
}
