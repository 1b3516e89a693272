package adapters

import (
	"context"
	"errors"

	athleteservice "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/application"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ChampionshipLookupAdapter adapts the championship repository to the athlete
// service ChampionshipLookup port.
type ChampionshipLookupAdapter struct {
	repo championshipdb.Repository
}

// NewChampionshipLookupAdapter constructs a new adapter.
func NewChampionshipLookupAdapter(repo championshipdb.Repository) *ChampionshipLookupAdapter {
	return &ChampionshipLookupAdapter{repo: repo}
}

func (a *ChampionshipLookupAdapter) LockChampionship(ctx context.Context, db bun.IDB, id uuid.UUID) (*athleteservice.ChampionshipInfo, error) {
	c, err := a.repo.GetByIDForUpdate(ctx, db, id)
	if err != nil {
		if errors.Is(err, championshipdb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &athleteservice.ChampionshipInfo{
		ID:        c.ID,
		CreatedBy: c.CreatedBy,
		Completed: c.Status == championshipdomain.StatusCompleted,
	}, nil
}
