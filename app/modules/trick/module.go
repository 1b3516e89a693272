package trick

import (
	"context"
	"log/slog"

	trickservice "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/application"
	trickhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/handlers"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability"
	"github.com/uptrace/bun"
)

// Module represents the trick catalog module.
type Module struct {
	Service    trickservice.Service
	Repository trickdb.Repository
	HTTP       *trickhandlers.HTTPHandlers
}

// NewTrickModule creates and initializes the trick module.
func NewTrickModule(ctx context.Context, obs observability.Observability, db *bun.DB) *Module {
	logger := obs.Logger.With(slog.String("module", "trick"))
	logger.InfoContext(ctx, "trick.NewTrickModule initializing")

	repo := trickdb.NewRepository(db)
	service := trickservice.NewTrickService(repo, logger, obs.ModuleMetrics("trick"), obs.Tracer)

	return &Module{
		Service:    service,
		Repository: repo,
		HTTP:       trickhandlers.NewHTTPHandlers(service, logger),
	}
}
