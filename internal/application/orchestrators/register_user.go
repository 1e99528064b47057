package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"teamroster/internal/adapters/email"
	userStore "teamroster/internal/adapters/storage/user"
	"teamroster/internal/domain/user"
)

// UserStoreForRegister defines the store interface needed by RegisterUser.
type UserStoreForRegister interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Insert(ctx context.Context, value user.User) (int64, error)
}

// RegisterUserInput carries input for the registration orchestrator.
type RegisterUserInput struct {
	Name     string
	Username string
	Password string
}

// RegisterUserDeps holds dependencies for RegisterUser.
type RegisterUserDeps struct {
	UserStore UserStoreForRegister

	// Optional operator notification; best-effort, never fails registration.
	EmailSender email.Sender
	EmailFrom   string
	NotifyTo    string
}

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrMissingFields  = errors.New("name, username and password are required")
)

// ExecuteRegisterUser validates input, hashes the password and creates the user.
// The UNIQUE constraint on username is the authoritative duplicate check: the
// friendly pre-check covers the common case, and a constraint violation from
// Insert closes the concurrent-registration window.
// PRE: Valid form input provided
// POST: User is persisted with a bcrypt hash; returns the new user id
func ExecuteRegisterUser(ctx context.Context, input RegisterUserInput, deps RegisterUserDeps) (int64, error) {
	if input.Name == "" || input.Username == "" || input.Password == "" {
		return 0, ErrMissingFields
	}

	// Friendly pre-check for the common case
	if _, err := deps.UserStore.GetByUsername(ctx, input.Username); err == nil {
		slog.Info("auth_event", "event", "register_conflict", "username", input.Username)
		return 0, ErrUsernameExists
	} else if !errors.Is(err, userStore.ErrNotFound) {
		return 0, err
	}

	u := user.User{
		Name:     input.Name,
		Username: input.Username,
	}
	u.SanitizeName()

	if err := u.Validate(); err != nil {
		return 0, err
	}
	if err := u.SetPassword(input.Password); err != nil {
		return 0, err
	}

	id, err := deps.UserStore.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, userStore.ErrDuplicateUsername) {
			// Lost the race to a concurrent registration
			slog.Info("auth_event", "event", "register_conflict", "username", input.Username, "reason", "constraint")
			return 0, ErrUsernameExists
		}
		return 0, err
	}

	slog.Info("auth_event", "event", "user_registered", "username", input.Username, "user_id", id)

	notifyRegistration(ctx, deps, u)

	return id, nil
}

// notifyRegistration emails the site operator about a new registration.
// Failures are logged and never fail registration.
func notifyRegistration(ctx context.Context, deps RegisterUserDeps, u user.User) {
	if deps.EmailSender == nil || deps.NotifyTo == "" {
		return
	}
	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{deps.NotifyTo},
		From:    deps.EmailFrom,
		Subject: "New user registered",
		HTML:    fmt.Sprintf("<p>%s (username %q) just registered.</p>", u.Name, u.Username),
	})
	if err != nil {
		slog.Warn("registration_notify_failed", "username", u.Username, "error", err)
	}
}
