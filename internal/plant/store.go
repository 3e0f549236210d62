package plant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/herbgarden/herbarium/internal/log"
)

// plantCols is the standard SELECT column list for scanPlant.
const plantCols = `plant_id, common_name, scientific_name, description, uses,
	region, plant_type, image_url, three_d_model_url`

// Constraint names from db/migrations; used to translate unique violations
// back into the matching sentinel error.
const (
	commonNameConstraint     = "plants_common_name_key"
	scientificNameConstraint = "plants_scientific_name_key"
)

// Store manages plant catalog persistence.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger log.Logger
}

// NewStore creates a plant Store.
func NewStore(pool *pgxpool.Pool, logger log.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Create inserts a new plant after verifying both natural keys are free.
//
// The precondition reads decide which of the two conflicts to report; the
// insert itself relies on the unique constraints, so a writer interleaving
// between check and insert surfaces as the same sentinel error rather than
// a duplicate row.
func (s *Store) Create(ctx context.Context, p CreateParams) (*Plant, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM plants WHERE common_name = $1)`,
		p.CommonName).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking common name %q: %w", p.CommonName, err)
	}
	if exists {
		return nil, ErrCommonNameTaken
	}

	if p.ScientificName != nil && *p.ScientificName != "" {
		err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM plants WHERE scientific_name = $1)`,
			*p.ScientificName).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking scientific name %q: %w", *p.ScientificName, err)
		}
		if exists {
			return nil, ErrScientificNameTaken
		}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO plants (common_name, scientific_name, description, uses,
			region, plant_type, image_url, three_d_model_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+plantCols,
		p.CommonName, p.ScientificName, p.Description, p.Uses,
		p.Region, p.PlantType, p.ImageURL, p.ModelURL)

	created, err := scanPlant(row)
	if err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("creating plant %q: %w", p.CommonName, err)
	}

	s.logger.Debug("created plant", "plant_id", created.ID, "common_name", created.CommonName)
	return created, nil
}

// Search returns plants matching the query, paginated after filtering.
//
// An empty query returns all plants. A non-empty query performs a
// case-insensitive substring match against common name, scientific name,
// description, and the uses array rendered as a space-joined string,
// combined with OR.
func (s *Store) Search(ctx context.Context, query string, skip, limit int) ([]*Plant, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if query == "" {
		rows, err = s.pool.Query(ctx, `
			SELECT `+plantCols+`
			FROM plants
			ORDER BY plant_id
			OFFSET $1 LIMIT $2`,
			skip, limit)
	} else {
		pattern := "%" + query + "%"
		rows, err = s.pool.Query(ctx, `
			SELECT `+plantCols+`
			FROM plants
			WHERE common_name ILIKE $1
			   OR scientific_name ILIKE $1
			   OR description ILIKE $1
			   OR array_to_string(uses, ' ') ILIKE $1
			ORDER BY plant_id
			OFFSET $2 LIMIT $3`,
			pattern, skip, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("searching plants: %w", err)
	}
	defer rows.Close()

	plants := make([]*Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plant row: %w", err)
		}
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plant rows: %w", err)
	}

	return plants, nil
}

// Get retrieves a plant by ID. Returns ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, plantID int64) (*Plant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+plantCols+`
		FROM plants
		WHERE plant_id = $1`,
		plantID)

	p, err := scanPlant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting plant %d: %w", plantID, err)
	}

	return p, nil
}

// Exists reports whether a plant with the given ID is in the catalog.
func (s *Store) Exists(ctx context.Context, plantID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM plants WHERE plant_id = $1)`,
		plantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking plant %d: %w", plantID, err)
	}
	return exists, nil
}

// translateUniqueViolation maps a 23505 from the plants table to the
// sentinel error matching the violated constraint. Returns nil for
// anything else.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case commonNameConstraint:
		return ErrCommonNameTaken
	case scientificNameConstraint:
		return ErrScientificNameTaken
	}
	return nil
}

func scanPlant(row pgx.Row) (*Plant, error) {
	var p Plant
	if err := row.Scan(&p.ID, &p.CommonName, &p.ScientificName, &p.Description,
		&p.Uses, &p.Region, &p.PlantType, &p.ImageURL, &p.ModelURL); err != nil {
		return nil, err
	}
	return &p, nil
}
