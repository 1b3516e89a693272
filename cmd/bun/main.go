package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/jwt"
	trickservice "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/application"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"github.com/Black-And-White-Club/slackline-champs/internal/db/bundb"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "slackline-champs database and developer tooling",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
			newDBCommand(),
			newTokenCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// withDB opens the database for the duration of fn.
func withDB(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, db *bun.DB) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := bundb.Open(c.Context, cfg.Postgres.DSN, bundb.Options{})
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(c.Context, cfg, db)
}

// withMigrators runs fn for each module in migration order.
func withMigrators(c *cli.Context, fn func(ctx context.Context, m bundb.ModuleMigrator) error) error {
	return withDB(c, func(ctx context.Context, _ *config.Config, db *bun.DB) error {
		for _, m := range bundb.Migrators(db) {
			if err := fn(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func findMigrator(c *cli.Context, fn func(ctx context.Context, m bundb.ModuleMigrator) error) error {
	moduleName := c.Args().First()
	found := false
	err := withMigrators(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
		if m.Module != moduleName {
			return nil
		}
		found = true
		return fn(ctx, m)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("invalid module name: %s", moduleName)
	}
	return nil
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						fmt.Printf("Initializing migrations for module: %s\n", m.Module)
						return m.Migrator.Init(ctx)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						fmt.Printf("Running migrations for module: %s\n", m.Module)
						group, err := m.Migrator.Migrate(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.Module)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.Module, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of one module",
				Action: func(c *cli.Context) error {
					return findMigrator(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						group, err := m.Migrator.Rollback(ctx)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.Module)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.Module, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					return findMigrator(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						name := strings.Join(c.Args().Tail(), "_")
						mf, err := m.Migrator.CreateGoMigration(ctx, name)
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", m.Module, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "create_sql",
				Usage: "create up and down SQL migrations",
				Action: func(c *cli.Context) error {
					return findMigrator(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						name := strings.Join(c.Args().Tail(), "_")
						files, err := m.Migrator.CreateSQLMigrations(ctx, name)
						if err != nil {
							return err
						}
						for _, mf := range files {
							fmt.Printf("Created migration for module %s: %s (%s)\n", m.Module, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(ctx context.Context, m bundb.ModuleMigrator) error {
						ms, err := m.Migrator.MigrationsWithStatus(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", m.Module)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						return nil
					})
				},
			},
			{
				Name:  "river",
				Usage: "apply the job queue schema",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if err := bundb.MigrateRiver(c.Context, cfg.Postgres.DSN); err != nil {
						return err
					}
					fmt.Println("River queue migrations completed")
					return nil
				},
			},
		},
	}
}

func newDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "data maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "seed-tricks",
				Usage: "load the default trick catalog; existing names are kept",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, _ *config.Config, db *bun.DB) error {
						obs := observability.NewNoop()
						svc := trickservice.NewTrickService(trickdb.NewRepository(db), obs.Logger, metrics.NewNoop(), obs.Tracer)
						added, err := svc.SeedDefaults(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("Seeded %d tricks\n", added)
						return nil
					})
				},
			},
		},
	}
}

func newTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "print a signed development token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Required: true, Usage: "user id the token is issued to"},
			&cli.StringFlag{Name: "email"},
			&cli.BoolFlag{Name: "admin", Usage: "issue an admin token"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to jwt.default_ttl)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			role := authdomain.RoleAuthenticated
			if c.Bool("admin") {
				role = authdomain.RoleAdmin
			}
			ttl := c.Duration("ttl")
			if ttl <= 0 {
				ttl = cfg.JWT.DefaultTTL
			}
			if ttl <= 0 {
				ttl = time.Hour
			}

			provider := authjwt.NewProvider(cfg.JWT.Secret, authjwt.Options{Issuer: cfg.JWT.Issuer, Audience: cfg.JWT.Audience})
			token, err := provider.GenerateToken(&authdomain.Claims{
				Subject: c.String("subject"),
				Email:   c.String("email"),
				Role:    role,
			}, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
