package championshiphandlers

import (
	"context"
	"log/slog"

	championshipservice "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/application"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/handlerwrapper"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ChampionshipHandlers implements the Handlers interface.
type ChampionshipHandlers struct {
	service championshipservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewChampionshipHandlers creates a new ChampionshipHandlers instance.
func NewChampionshipHandlers(
	service championshipservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ChampionshipHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func (h *ChampionshipHandlers) HandleBracketGenerated(ctx context.Context, payload *events.BracketGeneratedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ChampionshipHandlers.HandleBracketGenerated")
	defer span.End()

	return nil, h.activate(ctx, payload.ChampionshipID, "bracket_generated")
}

func (h *ChampionshipHandlers) HandleStartDue(ctx context.Context, payload *events.ChampionshipStartDuePayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ChampionshipHandlers.HandleStartDue")
	defer span.End()

	return nil, h.activate(ctx, payload.ChampionshipID, "scheduled_start")
}

func (h *ChampionshipHandlers) HandleBracketCompleted(ctx context.Context, payload *events.BracketCompletedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ChampionshipHandlers.HandleBracketCompleted")
	defer span.End()

	_, err := h.service.CompleteChampionship(ctx, payload.ChampionshipID, payload.ChampionID)
	if err != nil {
		return nil, h.dropDomainError(ctx, payload.ChampionshipID, "bracket_completed", err)
	}

	h.logger.InfoContext(ctx, "Championship completed",
		attr.ExtractCorrelationID(ctx),
		attr.ChampionshipID(payload.ChampionshipID),
		attr.UUID("champion_id", payload.ChampionID),
	)
	return nil, nil
}

func (h *ChampionshipHandlers) activate(ctx context.Context, id uuid.UUID, reason string) error {
	if _, err := h.service.ActivateChampionship(ctx, id); err != nil {
		return h.dropDomainError(ctx, id, reason, err)
	}
	h.logger.InfoContext(ctx, "Championship activation processed",
		attr.ExtractCorrelationID(ctx),
		attr.ChampionshipID(id),
		attr.String("reason", reason),
	)
	return nil
}

// dropDomainError acknowledges messages that can never succeed, such as one
// for a deleted championship. Other errors are returned for redelivery.
func (h *ChampionshipHandlers) dropDomainError(ctx context.Context, id uuid.UUID, reason string, err error) error {
	if apperrors.IsDomain(err) {
		h.logger.WarnContext(ctx, "Dropping championship event",
			attr.ExtractCorrelationID(ctx),
			attr.ChampionshipID(id),
			attr.String("reason", reason),
			attr.Error(err),
		)
		return nil
	}
	return err
}
