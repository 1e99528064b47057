package team

import (
	"errors"
	"html"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxCodeLength = 20
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyCode   = errors.New("team code cannot be empty")
	ErrCodeTooLong = errors.New("team code cannot exceed 20 characters")
	ErrEmptyName   = errors.New("team name cannot be empty")
	ErrNameTooLong = errors.New("team name cannot exceed 100 characters")
	ErrNoManager   = errors.New("team must have a manager")
)

// Team holds state for a team. Code is the user-chosen unique identifier
// used in URLs; Manager is the id of the owning user.
type Team struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Website     string
	Manager     int64
}

// WithManager is a Team joined with its manager's display name,
// as shown on the team detail page.
type WithManager struct {
	Team
	ManagerName string
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Code) == "" {
		return ErrEmptyCode
	}
	if len(t.Code) > MaxCodeLength {
		return ErrCodeTooLong
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if t.Manager == 0 {
		return ErrNoManager
	}
	return nil
}

// Sanitize HTML-escapes the name and description. The website field is
// deliberately left raw unless escapeWebsite is set; the original app
// never escaped it, so escaping is opt-in to keep stored data compatible.
// PRE: Team fields are populated
// POST: Name and Description contain no live markup
func (t *Team) Sanitize(escapeWebsite bool) {
	t.Name = html.EscapeString(t.Name)
	t.Description = html.EscapeString(t.Description)
	if escapeWebsite {
		t.Website = html.EscapeString(t.Website)
	}
}
