package championshipdb

import (
	"context"

	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for championship persistence.
type Repository interface {
	// Create inserts a new championship.
	Create(ctx context.Context, db bun.IDB, c *Championship) error

	// GetByID retrieves a championship by ID.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Championship, error)

	// GetByIDForUpdate retrieves a championship and locks its row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Championship, error)

	// ListByCreator returns the creator's championships, newest date first.
	// A nil status returns every status; limit <= 0 means no limit.
	ListByCreator(ctx context.Context, db bun.IDB, createdBy string, status *championshipdomain.Status, limit int) ([]Championship, error)

	// UpdateStatus sets the status and, when winnerID is not nil, the winner.
	UpdateStatus(ctx context.Context, db bun.IDB, id uuid.UUID, status championshipdomain.Status, winnerID *uuid.UUID) error

	// Delete removes a championship. Athletes, matches and performances cascade.
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// CountByStatus returns how many of the creator's championships are in each status.
	CountByStatus(ctx context.Context, db bun.IDB, createdBy string) (map[championshipdomain.Status]int, error)
}
