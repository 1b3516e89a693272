package athletedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for athlete persistence.
type Repository interface {
	// Create inserts one or more athletes in a single statement.
	Create(ctx context.Context, db bun.IDB, athletes ...*Athlete) error

	// GetByID retrieves an athlete by ID.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Athlete, error)

	// ListByChampionship returns a championship's athletes ordered by name.
	ListByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]Athlete, error)

	// ListIDs returns the IDs of a championship's athletes in insertion order.
	ListIDs(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]uuid.UUID, error)

	// CountByChampionships counts athletes across the given championships.
	CountByChampionships(ctx context.Context, db bun.IDB, championshipIDs []uuid.UUID) (int, error)

	// Delete removes an athlete.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
