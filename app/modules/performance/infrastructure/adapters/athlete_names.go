package adapters

import (
	"context"

	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AthleteNamesAdapter adapts the athlete repository to the performance
// service AthleteNames port.
type AthleteNamesAdapter struct {
	repo athletedb.Repository
}

// NewAthleteNamesAdapter constructs a new adapter.
func NewAthleteNamesAdapter(repo athletedb.Repository) *AthleteNamesAdapter {
	return &AthleteNamesAdapter{repo: repo}
}

func (a *AthleteNamesAdapter) Names(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (map[uuid.UUID]string, error) {
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
