package player

import (
	"errors"
	"html"
	"strings"
)

// MaxNameLength caps the player name field.
const MaxNameLength = 100

// Domain errors
var (
	ErrEmptyName   = errors.New("player name cannot be empty")
	ErrNameTooLong = errors.New("player name cannot exceed 100 characters")
	ErrEmptyTeam   = errors.New("player must belong to a team")
)

// Player holds state for a roster entry. Team is the code of the team
// the player belongs to; players have no independent identity.
type Player struct {
	Name  string
	Notes string
	Team  string
}

// Validate checks if the Player has valid data.
// PRE: Player struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(p.Team) == "" {
		return ErrEmptyTeam
	}
	return nil
}

// Sanitize HTML-escapes the name and notes for safe rendering.
// PRE: Player fields are populated
// POST: Name and Notes contain no live markup
func (p *Player) Sanitize() {
	p.Name = html.EscapeString(p.Name)
	p.Notes = html.EscapeString(p.Notes)
}
