package championshipmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating championships table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS championships (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(200) NOT NULL CHECK (char_length(btrim(name)) >= 3),
					description TEXT,
					date TIMESTAMPTZ NOT NULL,
					location TEXT,
					created_by VARCHAR(255) NOT NULL,
					status VARCHAR(20) NOT NULL DEFAULT 'draft'
						CHECK (status IN ('draft', 'active', 'completed')),
					winner_id UUID,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_championships_created_by_date
					ON championships(created_by, date DESC);
				CREATE INDEX IF NOT EXISTS idx_championships_status ON championships(status);
			`); err != nil {
				return fmt.Errorf("failed to create championships table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping championships table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS championships CASCADE;`); err != nil {
				return fmt.Errorf("failed to drop championships table: %w", err)
			}
			return nil
		})
	})
}
