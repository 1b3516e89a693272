package bracket

import (
	"context"
	"fmt"
	"log/slog"

	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	brackethandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/handlers"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/uptrace/bun"
)

// Module represents the bracket module. It publishes bracket events but
// consumes none.
type Module struct {
	Service    bracketservice.Service
	Repository bracketdb.Repository
	HTTP       *brackethandlers.HTTPHandlers
	logger     *slog.Logger
}

// NewBracketModule creates and initializes the bracket module. A nil repo is
// built from db.
func NewBracketModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	db *bun.DB,
	repo bracketdb.Repository,
	championships bracketservice.ChampionshipLookup,
	athletes bracketservice.AthleteSource,
	performances bracketservice.PerformanceTotals,
) (*Module, error) {
	logger := obs.Logger.With(slog.String("module", "bracket"))
	logger.InfoContext(ctx, "bracket.NewBracketModule initializing")

	layout, err := bracketdomain.ParseLayout(cfg.Bracket.DefaultLayout, bracketdomain.LayoutCompact)
	if err != nil {
		return nil, fmt.Errorf("invalid bracket.default_layout: %w", err)
	}

	if repo == nil {
		repo = bracketdb.NewRepository(db)
	}

	service := bracketservice.NewBracketService(
		repo,
		championships,
		athletes,
		performances,
		bracketdomain.NewSeeder(nil),
		layout,
		eventBus,
		logger,
		obs.ModuleMetrics("bracket"),
		obs.Tracer,
		db,
	)

	return &Module{
		Service:    service,
		Repository: repo,
		HTTP:       brackethandlers.NewHTTPHandlers(service, logger),
		logger:     logger,
	}, nil
}

// Close is a no-op kept for symmetry with the other modules.
func (m *Module) Close(context.Context) error {
	m.logger.Info("Bracket module stopped")
	return nil
}
