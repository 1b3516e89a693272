package championshiphandlers

import (
	"context"

	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/handlerwrapper"
)

// Handlers defines the championship module's event handlers.
type Handlers interface {
	// HandleBracketGenerated activates a draft championship once its bracket exists.
	HandleBracketGenerated(ctx context.Context, payload *events.BracketGeneratedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleBracketCompleted completes the championship and records the champion.
	HandleBracketCompleted(ctx context.Context, payload *events.BracketCompletedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleStartDue activates a championship whose scheduled date has arrived.
	HandleStartDue(ctx context.Context, payload *events.ChampionshipStartDuePayloadV1) ([]handlerwrapper.Result, error)
}
