package adapters

import (
	"context"

	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TrickCatalogAdapter adapts the trick repository to the performance service
// TrickCatalog port.
type TrickCatalogAdapter struct {
	repo trickdb.Repository
}

// NewTrickCatalogAdapter constructs a new adapter.
func NewTrickCatalogAdapter(repo trickdb.Repository) *TrickCatalogAdapter {
	return &TrickCatalogAdapter{repo: repo}
}

func (a *TrickCatalogAdapter) Existing(ctx context.Context, db bun.IDB, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	tricks, err := a.repo.ListByIDs(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(tricks))
	for _, t := range tricks {
		known[t.ID] = true
	}
	return known, nil
}
