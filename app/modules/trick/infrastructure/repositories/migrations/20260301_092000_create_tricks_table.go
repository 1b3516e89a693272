package trickmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tricks table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS tricks (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(120) NOT NULL CHECK (char_length(btrim(name)) >= 2),
					type VARCHAR(20) NOT NULL CHECK (type IN ('technique', 'height', 'spin', 'combo')),
					base_points INTEGER NOT NULL DEFAULT 0 CHECK (base_points >= 0),
					description TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_tricks_name_lower ON tricks(lower(name));
			`); err != nil {
				return fmt.Errorf("failed to create tricks table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tricks table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS tricks CASCADE;`); err != nil {
				return fmt.Errorf("failed to drop tricks table: %w", err)
			}
			return nil
		})
	})
}
