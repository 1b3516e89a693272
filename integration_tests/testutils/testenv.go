// Package testutils provisions Postgres and NATS containers for the
// integration suites.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Black-And-White-Club/slackline-champs/integration_tests/containers"
	"github.com/Black-And-White-Club/slackline-champs/internal/db/bundb"
	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds the containers and connections shared by a suite.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
	DSN           string
	NatsURL       string
	DB            *bun.DB
	EventBus      *eventbus.JetStreamEventBus
	Logger        *slog.Logger
}

// NewTestEnvironment starts the containers, applies every migration and
// provisions the event streams.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(ctx)
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	var err error
	env.PgContainer, env.DSN, err = containers.SetupPostgresContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	env.NatsContainer, env.NatsURL, err = containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, err
	}

	env.DB, err = bundb.Open(ctx, env.DSN, bundb.Options{MaxOpenConns: 10})
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	if err := bundb.MigrateRiver(ctx, env.DSN); err != nil {
		env.Cleanup()
		return nil, err
	}
	if err := bundb.MigrateAll(ctx, env.DB); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	env.EventBus, err = eventbus.NewJetStreamEventBus(ctx, eventbus.JetStreamConfig{
		URL:        env.NatsURL,
		ClientName: "integration-tests",
	}, env.Logger)
	if err != nil {
		env.Cleanup()
		return nil, err
	}
	for _, stream := range events.Streams {
		if err := env.EventBus.CreateStream(ctx, stream); err != nil {
			env.Cleanup()
			return nil, err
		}
	}

	return env, nil
}

// Cleanup releases connections and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	ctx := context.Background()
	if env.EventBus != nil {
		_ = env.EventBus.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.NatsContainer != nil {
		_ = env.NatsContainer.Terminate(ctx)
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(ctx)
	}
	env.CancelContext()
}
