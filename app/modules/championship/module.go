package championship

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	championshipservice "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/application"
	championshiphandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/handlers"
	championshipqueue "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/queue"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	championshiprouter "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/router"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the championship module.
type Module struct {
	Service            championshipservice.Service
	Repository         championshipdb.Repository
	HTTP               *championshiphandlers.HTTPHandlers
	Queue              championshipqueue.QueueService
	ChampionshipRouter *championshiprouter.ChampionshipRouter
	cancelFunc         context.CancelFunc
	logger             *slog.Logger
}

// NewChampionshipModule creates and initializes the championship module.
func NewChampionshipModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	db *bun.DB,
	athletes championshipservice.AthleteCounter,
) (*Module, error) {
	logger := obs.Logger.With(slog.String("module", "championship"))
	logger.InfoContext(ctx, "championship.NewChampionshipModule initializing")

	repo := championshipdb.NewRepository(db)
	metrics := obs.ModuleMetrics("championship")

	var queue championshipqueue.QueueService
	if cfg.Queue.Enabled {
		q, err := championshipqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, cfg.Queue.MaxWorkers, metrics, eventBus)
		if err != nil {
			return nil, fmt.Errorf("failed to create championship queue: %w", err)
		}
		queue = q
	} else {
		queue = championshipqueue.NewNoopService(logger)
	}

	service := championshipservice.NewChampionshipService(repo, athletes, queue, eventBus, logger, metrics, obs.Tracer, db)

	handlers := championshiphandlers.NewChampionshipHandlers(service, logger, obs.Tracer)

	championshipRouter := championshiprouter.NewChampionshipRouter(logger, router, eventBus, eventBus, obs.Tracer)
	if err := championshipRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure championship router: %w", err)
	}

	return &Module{
		Service:            service,
		Repository:         repo,
		HTTP:               championshiphandlers.NewHTTPHandlers(service, logger),
		Queue:              queue,
		ChampionshipRouter: championshipRouter,
		logger:             logger,
	}, nil
}

// Run starts the job queue and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting championship module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.Queue.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Championship queue failed to start", slog.String("error", err.Error()))
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Championship module goroutine stopped")
}

// Close stops the job queue.
func (m *Module) Close(ctx context.Context) error {
	m.logger.Info("Stopping championship module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.Queue.Stop(ctx); err != nil {
		return fmt.Errorf("error stopping championship queue: %w", err)
	}

	m.logger.Info("Championship module stopped")
	return nil
}
