package performance

import (
	"context"
	"log/slog"

	performanceservice "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/application"
	performancehandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/handlers"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/uptrace/bun"
)

// Module represents the performance scoring module.
type Module struct {
	Service    performanceservice.Service
	Repository performancedb.Repository
	HTTP       *performancehandlers.HTTPHandlers
}

// NewPerformanceModule creates and initializes the performance module.
func NewPerformanceModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	repo performancedb.Repository,
	matches performanceservice.MatchLookup,
	championships performanceservice.ChampionshipOwner,
	tricks performanceservice.TrickCatalog,
	athletes performanceservice.AthleteNames,
) *Module {
	logger := obs.Logger.With(slog.String("module", "performance"))
	logger.InfoContext(ctx, "performance.NewPerformanceModule initializing")

	if repo == nil {
		repo = performancedb.NewRepository(db)
	}
	service := performanceservice.NewPerformanceService(repo, matches, championships, tricks, athletes,
		logger, obs.ModuleMetrics("performance"), obs.Tracer, db)

	return &Module{
		Service:    service,
		Repository: repo,
		HTTP:       performancehandlers.NewHTTPHandlers(service, logger),
	}
}
