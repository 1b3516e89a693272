package bundb

import (
	"context"
	"fmt"

	athletemigrations "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories/migrations"
	bracketmigrations "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories/migrations"
	championshipmigrations "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories/migrations"
	performancemigrations "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories/migrations"
	trickmigrations "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrator is one module's migrator. Each module tracks its migrations
// in its own table.
type ModuleMigrator struct {
	Module   string
	Migrator *migrate.Migrator
}

// Migrators returns every module's migrator in foreign-key order: a module
// only references tables of modules listed before it.
func Migrators(db *bun.DB) []ModuleMigrator {
	modules := []struct {
		name       string
		migrations *migrate.Migrations
	}{
		{"championship", championshipmigrations.Migrations},
		{"athlete", athletemigrations.Migrations},
		{"trick", trickmigrations.Migrations},
		{"bracket", bracketmigrations.Migrations},
		{"performance", performancemigrations.Migrations},
	}

	out := make([]ModuleMigrator, len(modules))
	for i, m := range modules {
		out[i] = ModuleMigrator{
			Module: m.name,
			Migrator: migrate.NewMigrator(db, m.migrations,
				migrate.WithTableName("bun_migrations_"+m.name),
				migrate.WithLocksTableName("bun_migration_locks_"+m.name),
			),
		}
	}
	return out
}

// MigrateAll initializes and applies every module's migrations in order.
func MigrateAll(ctx context.Context, db *bun.DB) error {
	for _, m := range Migrators(db) {
		if err := m.Migrator.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", m.Module, err)
		}
		if _, err := m.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Module, err)
		}
	}
	return nil
}

// MigrateRiver applies River's job queue schema.
func MigrateRiver(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to migrate river: %w", err)
	}
	return nil
}
