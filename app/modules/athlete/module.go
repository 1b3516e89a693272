package athlete

import (
	"context"
	"log/slog"

	athleteservice "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/application"
	athletehandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/handlers"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/uptrace/bun"
)

// Module represents the athlete module. It has no event consumers.
type Module struct {
	Service    athleteservice.Service
	Repository athletedb.Repository
	HTTP       *athletehandlers.HTTPHandlers
	logger     *slog.Logger
}

// NewAthleteModule creates and initializes the athlete module.
func NewAthleteModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	repo athletedb.Repository,
	championships athleteservice.ChampionshipLookup,
	brackets athleteservice.BracketLookup,
) (*Module, error) {
	logger := obs.Logger.With(slog.String("module", "athlete"))
	logger.InfoContext(ctx, "athlete.NewAthleteModule initializing")

	if repo == nil {
		repo = athletedb.NewRepository(db)
	}

	service := athleteservice.NewAthleteService(repo, championships, brackets, logger, obs.ModuleMetrics("athlete"), obs.Tracer, db)

	return &Module{
		Service:    service,
		Repository: repo,
		HTTP:       athletehandlers.NewHTTPHandlers(service, logger, cfg.HTTP.MaxUploadBytes),
		logger:     logger,
	}, nil
}

// Close is a no-op kept for symmetry with the other modules.
func (m *Module) Close(context.Context) error {
	m.logger.Info("Athlete module stopped")
	return nil
}
