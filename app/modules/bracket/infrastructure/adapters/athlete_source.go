package adapters

import (
	"context"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AthleteSourceAdapter adapts the athlete repository to the bracket service
// AthleteSource port.
type AthleteSourceAdapter struct {
	repo athletedb.Repository
}

// NewAthleteSourceAdapter constructs a new adapter.
func NewAthleteSourceAdapter(repo athletedb.Repository) *AthleteSourceAdapter {
	return &AthleteSourceAdapter{repo: repo}
}

func (a *AthleteSourceAdapter) ListIDs(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]uuid.UUID, error) {
	return a.repo.ListIDs(ctx, db, championshipID)
}

func (a *AthleteSourceAdapter) Names(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (map[uuid.UUID]string, error) {
	athletes, err := a.repo.ListByChampionship(ctx, db, championshipID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(athletes))
	for _, athlete := range athletes {
		names[athlete.ID] = athlete.Name
	}
	return names, nil
}
