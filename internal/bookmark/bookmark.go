// Package bookmark implements the user/plant bookmark ledger backed by
// PostgreSQL.
//
// A bookmark links one user to one plant; the (user, plant) pair is unique.
// Create validates its preconditions in a fixed order so the caller always
// learns about a missing user before a missing plant, and about either
// before a duplicate pair.
package bookmark

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested bookmark does not exist.
	ErrNotFound = errors.New("bookmark not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPlantNotFound is returned when the referenced plant does not exist.
	ErrPlantNotFound = errors.New("plant not found")

	// ErrDuplicate is returned when the (user, plant) pair is already
	// bookmarked.
	ErrDuplicate = errors.New("plant is already bookmarked by this user")
)

// Bookmark links a user to a plant.
type Bookmark struct {
	ID           int64     `json:"bookmark_id"`
	UserGoogleID string    `json:"user_google_id"`
	PlantID      int64     `json:"plant_id"`
	BookmarkedAt time.Time `json:"bookmarked_at"`
}
