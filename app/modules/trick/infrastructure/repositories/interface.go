package trickdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for trick persistence.
type Repository interface {
	// Create inserts a trick, returning ErrDuplicateName when the name is taken.
	Create(ctx context.Context, db bun.IDB, trick *Trick) error

	// GetByID retrieves a trick by ID.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Trick, error)

	// List returns tricks matching filter ordered by name.
	List(ctx context.Context, db bun.IDB, filter Filter) ([]Trick, error)

	// ListByIDs returns the tricks among ids that exist.
	ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]Trick, error)

	// Seed inserts tricks whose names are not yet taken and returns how many
	// were added.
	Seed(ctx context.Context, db bun.IDB, tricks []*Trick) (int, error)
}
