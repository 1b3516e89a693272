package championshiprouter

import (
	"context"
	"log/slog"

	championshiphandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/handlers"
	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ChampionshipRouter handles Watermill handler registration for championship events.
type ChampionshipRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	tracer     trace.Tracer
}

// NewChampionshipRouter creates a new ChampionshipRouter.
func NewChampionshipRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
) *ChampionshipRouter {
	return &ChampionshipRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

// Configure sets up the router with handlers.
func (r *ChampionshipRouter) Configure(_ context.Context, handlers championshiphandlers.Handlers) error {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	r.logger.Info("Registering championship module handlers",
		slog.String("bracket_generated_subject", events.BracketGeneratedV1),
		slog.String("bracket_completed_subject", events.BracketCompletedV1),
		slog.String("start_due_subject", events.ChampionshipStartDueV1),
	)

	registerHandler(deps, events.BracketGeneratedV1, handlers.HandleBracketGenerated)
	registerHandler(deps, events.BracketCompletedV1, handlers.HandleBracketCompleted)
	registerHandler(deps, events.ChampionshipStartDueV1, handlers.HandleStartDue)

	r.logger.Info("Championship module handlers registered successfully")
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler is a generic function for type-safe Watermill handler registration.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "championship." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.publisher,
			handler,
		),
	)
}

// Close shuts down the router.
func (r *ChampionshipRouter) Close() error {
	return r.router.Close()
}
