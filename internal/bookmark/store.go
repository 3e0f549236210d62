package bookmark

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

// bookmarkCols is the standard SELECT column list for scanBookmark.
const bookmarkCols = `bookmark_id, user_google_id, plant_id, bookmarked_at`

// Constraint names from db/migrations.
const (
	pairConstraint    = "bookmarks_user_plant_key"
	userFKConstraint  = "bookmarks_user_google_id_fkey"
	plantFKConstraint = "bookmarks_plant_id_fkey"
)

// Store manages bookmark persistence.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	pool   *pgxpool.Pool
	logger log.Logger
}

// NewStore creates a bookmark Store.
func NewStore(pool *pgxpool.Pool, logger log.Logger) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{pool: pool, logger: logger}, nil
}

// Create links a user to a plant.
//
// Preconditions are checked in order — user exists, plant exists, pair not
// already bookmarked — and each failure is a hard stop. The insert relies
// on the foreign keys and the unique pair constraint, so a writer racing
// between check and insert still gets the matching sentinel error.
func (s *Store) Create(ctx context.Context, userGoogleID string, plantID int64) (*Bookmark, error) {
	var userExists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE google_id = $1)`,
		userGoogleID).Scan(&userExists)
	if err != nil {
		return nil, fmt.Errorf("checking user %s: %w", userGoogleID, err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	var plantExists bool
	err = s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM plants WHERE plant_id = $1)`,
		plantID).Scan(&plantExists)
	if err != nil {
		return nil, fmt.Errorf("checking plant %d: %w", plantID, err)
	}
	if !plantExists {
		return nil, ErrPlantNotFound
	}

	var bookmarked bool
	err = s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_google_id = $1 AND plant_id = $2)`,
		userGoogleID, plantID).Scan(&bookmarked)
	if err != nil {
		return nil, fmt.Errorf("checking existing bookmark: %w", err)
	}
	if bookmarked {
		return nil, ErrDuplicate
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO bookmarks (user_google_id, plant_id)
		VALUES ($1, $2)
		RETURNING `+bookmarkCols,
		userGoogleID, plantID)

	b, err := scanBookmark(row)
	if err != nil {
		if constraintErr := translateConstraintViolation(err); constraintErr != nil {
			return nil, constraintErr
		}
		return nil, fmt.Errorf("creating bookmark (%s, %d): %w", userGoogleID, plantID, err)
	}

	s.logger.Debug("created bookmark",
		"bookmark_id", b.ID, "user_google_id", b.UserGoogleID, "plant_id", b.PlantID)
	return b, nil
}

// List returns all bookmarks in insertion order with OFFSET/LIMIT pagination.
func (s *Store) List(ctx context.Context, skip, limit int) ([]*Bookmark, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookmarkCols+`
		FROM bookmarks
		ORDER BY bookmark_id
		OFFSET $1 LIMIT $2`,
		skip, limit)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

// ListForUser returns all bookmarks belonging to the given user,
// unpaginated. A user with no bookmarks yields an empty slice, not an
// error.
func (s *Store) ListForUser(ctx context.Context, userGoogleID string) ([]*Bookmark, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+bookmarkCols+`
		FROM bookmarks
		WHERE user_google_id = $1
		ORDER BY bookmark_id`,
		userGoogleID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks for user %s: %w", userGoogleID, err)
	}
	defer rows.Close()

	return collectBookmarks(rows)
}

// Delete removes the bookmark matching the composite (user, plant) key.
// Returns ErrNotFound when no row matched.
func (s *Store) Delete(ctx context.Context, userGoogleID string, plantID int64) error {
	var bookmarkID int64
	err := s.pool.QueryRow(ctx, `
		DELETE FROM bookmarks
		WHERE user_google_id = $1 AND plant_id = $2
		RETURNING bookmark_id`,
		userGoogleID, plantID).Scan(&bookmarkID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting bookmark (%s, %d): %w", userGoogleID, plantID, err)
	}

	s.logger.Debug("deleted bookmark",
		"bookmark_id", bookmarkID, "user_google_id", userGoogleID, "plant_id", plantID)
	return nil
}

// translateConstraintViolation maps constraint failures from the insert to
// the sentinel matching the precondition a racing writer invalidated.
// Returns nil for anything else.
func translateConstraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == pairConstraint {
			return ErrDuplicate
		}
	case pgerrcode.ForeignKeyViolation:
		switch pgErr.ConstraintName {
		case userFKConstraint:
			return ErrUserNotFound
		case plantFKConstraint:
			return ErrPlantNotFound
		}
	}
	return nil
}

func collectBookmarks(rows pgx.Rows) ([]*Bookmark, error) {
	bookmarks := make([]*Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmark rows: %w", err)
	}
	return bookmarks, nil
}

func scanBookmark(row pgx.Row) (*Bookmark, error) {
	var b Bookmark
	if err := row.Scan(&b.ID, &b.UserGoogleID, &b.PlantID, &b.BookmarkedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
