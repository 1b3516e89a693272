package adapters

import (
	"context"

	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PerformanceTotalsAdapter adapts the performance repository to the bracket
// service PerformanceTotals port.
type PerformanceTotalsAdapter struct {
	repo performancedb.Repository
}

// NewPerformanceTotalsAdapter constructs a new adapter.
func NewPerformanceTotalsAdapter(repo performancedb.Repository) *PerformanceTotalsAdapter {
	return &PerformanceTotalsAdapter{repo: repo}
}

func (a *PerformanceTotalsAdapter) TotalsByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (map[uuid.UUID]float64, error) {
	totals, err := a.repo.TotalsByMatch(ctx, db, matchID)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = map[uuid.UUID]float64{}
	}
	return totals, nil
}
