package bracketdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for bracket persistence.
type Repository interface {
	// CountByChampionship counts the matches of a championship.
	CountByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (int, error)

	// InsertMatches writes a whole bracket in a single statement.
	InsertMatches(ctx context.Context, db bun.IDB, matches []*Match) error

	// DeleteByChampionship removes every match of a championship and returns
	// how many were deleted.
	DeleteByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (int, error)

	// ListByChampionship returns matches ordered by round, then position.
	ListByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]Match, error)

	// GetByID retrieves a match by ID.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error)

	// GetByIDForUpdate retrieves a match with a row lock.
	GetByIDForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Match, error)

	// UpdateMatch persists slots, winner, status and timestamps.
	UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error
}
