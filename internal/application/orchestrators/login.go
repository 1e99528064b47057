package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"teamroster/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	UserID int64
	Name   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
}

// ErrInvalidCredentials is returned for any login failure. Unknown username
// and wrong password are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ExecuteLogin validates credentials and returns user info for session creation.
// PRE: Form input provided
// POST: Returns user id and display name on success
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	u, err := deps.UserStore.GetByUsername(ctx, input.Username)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "username", input.Username, "user_id", u.ID)

	return LoginResult{UserID: u.ID, Name: u.Name}, nil
}
