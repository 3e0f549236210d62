// Package user implements the user registry backed by PostgreSQL.
//
// Users are keyed by the Google ID issued during client-side sign-in; the
// backend trusts the identifier as supplied. Sync is an atomic upsert, so
// two concurrent syncs for the same new identity can never create duplicate
// rows.
package user

import "errors"

// ErrNotFound is returned when the requested user does not exist.
var ErrNotFound = errors.New("user not found")

// User is a registered account, keyed by the externally issued Google ID.
type User struct {
	GoogleID  string  `json:"google_id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// SyncParams carries the fields refreshed on every sync.
type SyncParams struct {
	GoogleID  string
	Email     string
	FirstName *string
	LastName  *string
}
