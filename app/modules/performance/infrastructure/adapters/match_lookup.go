package adapters

import (
	"context"
	"errors"

	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	performanceservice "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/application"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// MatchLookupAdapter adapts the bracket repository to the performance service
// MatchLookup port.
type MatchLookupAdapter struct {
	repo bracketdb.Repository
}

// NewMatchLookupAdapter constructs a new adapter.
func NewMatchLookupAdapter(repo bracketdb.Repository) *MatchLookupAdapter {
	return &MatchLookupAdapter{repo: repo}
}

func (a *MatchLookupAdapter) GetMatch(ctx context.Context, db bun.IDB, id uuid.UUID) (*performanceservice.MatchInfo, error) {
	return toMatchInfo(a.repo.GetByID(ctx, db, id))
}

func (a *MatchLookupAdapter) LockMatch(ctx context.Context, db bun.IDB, id uuid.UUID) (*performanceservice.MatchInfo, error) {
	return toMatchInfo(a.repo.GetByIDForUpdate(ctx, db, id))
}

func toMatchInfo(m *bracketdb.Match, err error) (*performanceservice.MatchInfo, error) {
	if err != nil {
		if errors.Is(err, bracketdb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &performanceservice.MatchInfo{
		ID:             m.ID,
		ChampionshipID: m.ChampionshipID,
		Athlete1ID:     m.Athlete1ID,
		Athlete2ID:     m.Athlete2ID,
		InProgress:     m.Status == bracketdomain.StatusInProgress,
	}, nil
}
