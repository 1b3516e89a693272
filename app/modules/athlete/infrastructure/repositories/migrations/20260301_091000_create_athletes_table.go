package athletemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating athletes table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS athletes (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					championship_id UUID NOT NULL REFERENCES championships(id) ON DELETE CASCADE,
					name VARCHAR(200) NOT NULL CHECK (char_length(btrim(name)) >= 3),
					category VARCHAR(20) NOT NULL DEFAULT 'trickline'
						CHECK (category IN ('trickline', 'speedline')),
					level VARCHAR(20) NOT NULL DEFAULT 'amateur'
						CHECK (level IN ('beginner', 'amateur', 'professional', 'female')),
					bio TEXT,
					avatar_url TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_athletes_championship ON athletes(championship_id, created_at);
			`); err != nil {
				return fmt.Errorf("failed to create athletes table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping athletes table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS athletes CASCADE;`); err != nil {
				return fmt.Errorf("failed to drop athletes table: %w", err)
			}
			return nil
		})
	})
}
