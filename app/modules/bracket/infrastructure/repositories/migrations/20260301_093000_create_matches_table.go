package bracketmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					championship_id UUID NOT NULL REFERENCES championships(id) ON DELETE CASCADE,
					round INTEGER NOT NULL CHECK (round >= 1),
					position INTEGER NOT NULL CHECK (position >= 0),
					athlete1_id UUID REFERENCES athletes(id),
					athlete2_id UUID REFERENCES athletes(id),
					winner_id UUID REFERENCES athletes(id),
					status VARCHAR(20) NOT NULL DEFAULT 'pending'
						CHECK (status IN ('pending', 'in_progress', 'completed')),
					next_match_id UUID REFERENCES matches(id) ON DELETE SET NULL DEFERRABLE INITIALLY DEFERRED,
					next_slot SMALLINT NOT NULL DEFAULT 0 CHECK (next_slot IN (0, 1)),
					feeders SMALLINT NOT NULL DEFAULT 0 CHECK (feeders BETWEEN 0 AND 2),
					started_at TIMESTAMPTZ,
					completed_at TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CHECK (winner_id IS NULL OR winner_id = athlete1_id OR winner_id = athlete2_id)
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_slot ON matches(championship_id, round, position);
				CREATE INDEX IF NOT EXISTS idx_matches_next ON matches(next_match_id);
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS matches CASCADE;`); err != nil {
				return fmt.Errorf("failed to drop matches table: %w", err)
			}
			return nil
		})
	})
}
