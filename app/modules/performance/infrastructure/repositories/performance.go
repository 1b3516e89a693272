package performancedb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new performance repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Upsert(ctx context.Context, db bun.IDB, p *Performance) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := db.NewInsert().
		Model(p).
		On("CONFLICT (athlete_id, match_id) DO UPDATE").
		Set("tricks = EXCLUDED.tricks").
		Set("total_score = EXCLUDED.total_score").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert performance: %w", err)
	}
	return nil
}

func (r *Impl) ListByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]Performance, error) {
	db = r.resolveDB(db)
	var out []Performance
	err := db.NewSelect().
		Model(&out).
		Where("p.match_id = ?", matchID).
		Order("p.total_score DESC", "p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}
	return out, nil
}

func (r *Impl) TotalsByMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) (map[uuid.UUID]float64, error) {
	list, err := r.ListByMatch(ctx, db, matchID)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]float64, len(list))
	for _, p := range list {
		totals[p.AthleteID] = p.TotalScore
	}
	return totals, nil
}

func (r *Impl) BestByChampionship(ctx context.Context, db bun.IDB, championshipID uuid.UUID) ([]AthleteBest, error) {
	db = r.resolveDB(db)
	var out []AthleteBest
	err := db.NewSelect().
		Model((*Performance)(nil)).
		Column("athlete_id").
		ColumnExpr("MAX(total_score) AS best").
		Where("championship_id = ?", championshipID).
		Group("athlete_id").
		OrderExpr("best DESC").
		Scan(ctx, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate performances: %w", err)
	}
	return out, nil
}
