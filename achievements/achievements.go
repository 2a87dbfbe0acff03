// Package achievements holds the programme highlights shown on the public
// achievements page and managed by administrators.
package achievements

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("achievement not found")

type Achievement struct {
	ID          string
	Title       string
	Year        int
	Description string
}

// Validate checks the fields an administrator must fill in.
func (a Achievement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("title is required")
	}
	if a.Year < 1963 || a.Year > 2100 {
		return errors.New("year is out of range")
	}
	return nil
}

// Repo defines storage for achievements.
type Repo interface {
	// List returns achievements newest first.
	List() ([]Achievement, error)

	// Add stores a new achievement and returns it with its assigned ID.
	Add(a Achievement) (Achievement, error)

	// Delete removes an achievement by ID.
	Delete(id string) error
}
