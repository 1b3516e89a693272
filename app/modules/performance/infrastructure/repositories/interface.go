package performancedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for performance persistence.
type Repository interface {
	// Upsert stores p, replacing the athlete's earlier performance in the
	// same match.
	Upsert(ctx context.Context, db bun.IDB, p *Performance) error

	// ListByMatch returns a match's performances, highest total first.
	ListByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]Performance, error)

	// TotalsByMatch maps each athlete to their total in the match.
	TotalsByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (map[uuid.UUID]float64, error)

	// BestByChampionship returns each athlete's best total, highest first.
	BestByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]AthleteBest, error)
}
