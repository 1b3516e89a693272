package adapters

import (
	"context"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/google/uuid"
)

// AthleteCounterAdapter adapts the athlete repository to the championship
// service AthleteCounter port.
type AthleteCounterAdapter struct {
	repo athletedb.Repository
}

// NewAthleteCounterAdapter constructs a new adapter.
func NewAthleteCounterAdapter(repo athletedb.Repository) *AthleteCounterAdapter {
	return &AthleteCounterAdapter{repo: repo}
}

func (a *AthleteCounterAdapter) CountByChampionships(ctx context.Context, ids []uuid.UUID) (int, error) {
	return a.repo.CountByChampionships(ctx, nil, ids)
}
