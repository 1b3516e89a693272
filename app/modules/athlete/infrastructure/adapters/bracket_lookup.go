package adapters

import (
	"context"

	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BracketLookupAdapter adapts the bracket repository to the athlete service
// BracketLookup port.
type BracketLookupAdapter struct {
	repo bracketdb.Repository
}

// NewBracketLookupAdapter constructs a new adapter.
func NewBracketLookupAdapter(repo bracketdb.Repository) *BracketLookupAdapter {
	return &BracketLookupAdapter{repo: repo}
}

func (a *BracketLookupAdapter) HasBracket(ctx context.Context, db bun.IDB, championshipID uuid.UUID) (bool, error) {
	n, err := a.repo.CountByChampionship(ctx, db, championshipID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
