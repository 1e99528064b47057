package user

import (
	"errors"
	"html"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 100
	MaxUsernameLength = 50
)

// Domain errors
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrNameTooLong     = errors.New("name cannot exceed 100 characters")
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username cannot exceed 50 characters")
	ErrEmptyPassword   = errors.New("password cannot be empty")
	ErrWrongPassword   = errors.New("incorrect password")
)

// User holds state for a registered user. Users manage teams; the
// Username is the login identifier and the Name is the display name.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt.
// PRE: plaintext is non-empty
// POST: PasswordHash is set to a salted bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// A malformed or empty hash is indistinguishable from a wrong password.
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// SanitizeName HTML-escapes the display name for safe rendering.
// PRE: Name is set
// POST: Name contains no live markup
func (u *User) SanitizeName() {
	u.Name = html.EscapeString(u.Name)
}
