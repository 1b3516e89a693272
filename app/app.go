// Package app wires configuration, infrastructure and feature modules into a
// runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/slackline-champs/app/modules/athlete"
	athleteadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/adapters"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/auth"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/bracket"
	bracketadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/adapters"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/championship"
	championshipadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/adapters"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/performance"
	performanceadapters "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/adapters"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/trick"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"github.com/Black-And-White-Club/slackline-champs/internal/db/bundb"
	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/modules"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	watermillutil "github.com/Black-And-White-Club/slackline-champs/internal/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// bus is the event bus plus the ability to release its connection.
type bus interface {
	eventbus.EventBus
	Close() error
}

// App holds the running service.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      bus
	Router        *message.Router

	Auth         *auth.Module
	Championship *championship.Module
	Athlete      *athlete.Module
	Trick        *trick.Module
	Bracket      *bracket.Module
	Performance  *performance.Module

	modules       *modules.Registry
	httpServer    *http.Server
	metricsServer *http.Server
	wg            sync.WaitGroup
}

// NewApp connects to Postgres and the event bus and builds every module.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN, bundb.Options{})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Database connection established")

	eventBus, err := newEventBus(ctx, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, stream := range events.Streams {
		if err := eventBus.CreateStream(ctx, stream); err != nil {
			_ = eventBus.Close()
			_ = db.Close()
			return nil, fmt.Errorf("failed to create stream %q: %w", stream, err)
		}
	}

	routerCfg := watermillutil.DefaultConfig()
	routerCfg.Registry = obs.Registry
	router, err := watermillutil.NewRouter(routerCfg, logger)
	if err != nil {
		_ = eventBus.Close()
		_ = db.Close()
		return nil, err
	}

	a := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
		EventBus:      eventBus,
		Router:        router,
		modules:       modules.NewRegistry(logger),
	}
	if err := a.initModules(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.httpServer = a.newHTTPServer()
	if cfg.Observability.MetricsAddress != "" {
		a.metricsServer = newMetricsServer(cfg.Observability.MetricsAddress, obs.Registry)
	}
	return a, nil
}

func newEventBus(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bus, error) {
	if cfg.NATS.URL == "" {
		logger.WarnContext(ctx, "NATS URL not configured, using in-process event bus")
		return eventbus.NewInMemoryEventBus(logger), nil
	}
	b, err := eventbus.NewJetStreamEventBus(ctx, eventbus.JetStreamConfig{
		URL:        cfg.NATS.URL,
		NKeySeed:   cfg.NATS.NKeySeed,
		ClientName: "slackline-champs",
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	return b, nil
}

// initModules builds repositories first so the cross-module adapters can
// share them, then the modules in dependency order.
func (a *App) initModules(ctx context.Context) error {
	cfg, obs, db := a.Config, a.Observability, a.DB

	championshipRepo := championshipdb.NewRepository(db)
	athleteRepo := athletedb.NewRepository(db)
	bracketRepo := bracketdb.NewRepository(db)
	trickRepo := trickdb.NewRepository(db)
	performanceRepo := performancedb.NewRepository(db)

	a.Auth = auth.NewAuthModule(cfg, obs.Logger.With(slog.String("module", "auth")))

	var err error
	a.Championship, err = championship.NewChampionshipModule(ctx, cfg, obs, a.EventBus, a.Router, db,
		championshipadapters.NewAthleteCounterAdapter(athleteRepo))
	if err != nil {
		return fmt.Errorf("failed to initialize championship module: %w", err)
	}
	a.modules.Add("championship", a.Championship.HTTP, a.Championship)

	a.Athlete, err = athlete.NewAthleteModule(ctx, cfg, obs, db, athleteRepo,
		athleteadapters.NewChampionshipLookupAdapter(championshipRepo),
		athleteadapters.NewBracketLookupAdapter(bracketRepo))
	if err != nil {
		return fmt.Errorf("failed to initialize athlete module: %w", err)
	}
	a.modules.Add("athlete", a.Athlete.HTTP, a.Athlete)

	a.Trick = trick.NewTrickModule(ctx, obs, db)
	a.modules.Add("trick", a.Trick.HTTP, nil)

	a.Bracket, err = bracket.NewBracketModule(ctx, cfg, obs, a.EventBus, db, bracketRepo,
		bracketadapters.NewChampionshipLookupAdapter(championshipRepo),
		bracketadapters.NewAthleteSourceAdapter(athleteRepo),
		bracketadapters.NewPerformanceTotalsAdapter(performanceRepo))
	if err != nil {
		return fmt.Errorf("failed to initialize bracket module: %w", err)
	}
	a.modules.Add("bracket", a.Bracket.HTTP, a.Bracket)

	a.Performance = performance.NewPerformanceModule(ctx, obs, db, performanceRepo,
		performanceadapters.NewMatchLookupAdapter(bracketRepo),
		performanceadapters.NewChampionshipOwnerAdapter(championshipRepo),
		performanceadapters.NewTrickCatalogAdapter(trickRepo),
		performanceadapters.NewAthleteNamesAdapter(athleteRepo))
	a.modules.Add("performance", a.Performance.HTTP, nil)

	return nil
}

// Run starts the event router, job queue and HTTP servers, and blocks until
// ctx is cancelled or a server fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger
	errCh := make(chan error, 3)

	go func() {
		if err := a.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("event router: %w", err)
		}
	}()
	select {
	case <-a.Router.Running():
	case err := <-errCh:
		return err
	}

	a.wg.Add(1)
	go a.Championship.Run(ctx, &a.wg)

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("address", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			logger.InfoContext(ctx, "Metrics server listening", attr.String("address", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts everything down: servers first, then the event router and
// modules, then the bus and database.
func (a *App) Close(ctx context.Context) error {
	logger := a.Observability.Logger
	var errs []error

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}
	if a.Router != nil {
		if err := a.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event router: %w", err))
		}
	}
	if a.modules != nil {
		if err := a.modules.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.wg.Wait()
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Application shut down gracefully")
	return nil
}
