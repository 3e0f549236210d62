package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/herbgarden/herbarium/internal/log"
)

// userCols is the standard SELECT column list for scanUser.
const userCols = `google_id, email, first_name, last_name`

// Store manages user persistence.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger log.Logger
}

// NewStore creates a user Store.
func NewStore(pool *pgxpool.Pool, logger log.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Sync creates the user if the Google ID is unseen, otherwise refreshes
// email and name in place. The upsert is a single atomic statement, so
// concurrent syncs for the same identity cannot race into duplicate inserts;
// both observe the stored state on return.
func (s *Store) Sync(ctx context.Context, p SyncParams) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (google_id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (google_id) DO UPDATE
		SET email = EXCLUDED.email,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name
		RETURNING `+userCols,
		p.GoogleID, p.Email, p.FirstName, p.LastName)

	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("syncing user %s: %w", p.GoogleID, err)
	}

	s.logger.Debug("synced user", "google_id", u.GoogleID)
	return u, nil
}

// List returns users in a fixed order with OFFSET/LIMIT pagination.
// The limit is applied as given; callers govern page size.
func (s *Store) List(ctx context.Context, skip, limit int) ([]*User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userCols+`
		FROM users
		ORDER BY google_id
		OFFSET $1 LIMIT $2`,
		skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

// Get retrieves a user by Google ID. Returns ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, googleID string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE google_id = $1`,
		googleID)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user %s: %w", googleID, err)
	}

	return u, nil
}

// Exists reports whether a user with the given Google ID is registered.
func (s *Store) Exists(ctx context.Context, googleID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE google_id = $1)`,
		googleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user %s: %w", googleID, err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.GoogleID, &u.Email, &u.FirstName, &u.LastName); err != nil {
		return nil, err
	}
	return &u, nil
}
