// Package plant implements the plant catalog backed by PostgreSQL.
//
// Plants carry two natural keys: the common name is globally unique, and
// the scientific name is unique when present (NULL or empty values are
// exempt). Both rules are enforced by database constraints; the store's
// precondition reads exist only to produce precise error messages, with
// constraint-violation translation as the backstop for racing writers.
package plant

import "errors"

var (
	// ErrNotFound is returned when the requested plant does not exist.
	ErrNotFound = errors.New("plant not found")

	// ErrCommonNameTaken is returned when a plant with the same common
	// name already exists.
	ErrCommonNameTaken = errors.New("plant with this common name already exists")

	// ErrScientificNameTaken is returned when a plant with the same
	// scientific name already exists.
	ErrScientificNameTaken = errors.New("plant with this scientific name already exists")
)

// Plant is a catalog entry.
type Plant struct {
	ID             int64    `json:"plant_id"`
	CommonName     string   `json:"common_name"`
	ScientificName *string  `json:"scientific_name"`
	Description    *string  `json:"description"`
	Uses           []string `json:"uses"`
	Region         *string  `json:"region"`
	PlantType      *string  `json:"plant_type"`
	ImageURL       *string  `json:"image_url"`
	ModelURL       *string  `json:"three_d_model_url"`
}

// CreateParams carries the fields for a new catalog entry.
// CommonName is required; everything else is optional.
type CreateParams struct {
	CommonName     string
	ScientificName *string
	Description    *string
	Uses           []string
	Region         *string
	PlantType      *string
	ImageURL       *string
	ModelURL       *string
}
