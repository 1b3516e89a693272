package adapters

import (
	"context"
	"errors"

	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ChampionshipOwnerAdapter adapts the championship repository to the
// performance service ChampionshipOwner port.
type ChampionshipOwnerAdapter struct {
	repo championshipdb.Repository
}

// NewChampionshipOwnerAdapter constructs a new adapter.
func NewChampionshipOwnerAdapter(repo championshipdb.Repository) *ChampionshipOwnerAdapter {
	return &ChampionshipOwnerAdapter{repo: repo}
}

func (a *ChampionshipOwnerAdapter) LockOwner(ctx context.Context, db bun.IDB, id uuid.UUID) (string, bool, error) {
	c, err := a.repo.GetByIDForUpdate(ctx, db, id)
	if err != nil {
		if errors.Is(err, championshipdb.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return c.CreatedBy, true, nil
}
