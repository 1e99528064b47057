package user

import (
	"context"
	"errors"

	domain "teamroster/internal/domain/user"
)

// Storage errors surfaced to the application layer.
var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Insert(ctx context.Context, value domain.User) (int64, error)
	Count(ctx context.Context) (int, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}
