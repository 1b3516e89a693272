package performancemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating performances table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS performances (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					athlete_id UUID NOT NULL REFERENCES athletes(id) ON DELETE CASCADE,
					championship_id UUID NOT NULL REFERENCES championships(id) ON DELETE CASCADE,
					match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
					tricks JSONB NOT NULL DEFAULT '[]'::jsonb,
					total_score NUMERIC(6, 2) NOT NULL DEFAULT 0 CHECK (total_score >= 0),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_performances_athlete_match ON performances(athlete_id, match_id);
				CREATE INDEX IF NOT EXISTS idx_performances_championship ON performances(championship_id);
			`); err != nil {
				return fmt.Errorf("failed to create performances table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping performances table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS performances CASCADE;`); err != nil {
				return fmt.Errorf("failed to drop performances table: %w", err)
			}
			return nil
		})
	})
}
