package championshipqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"
)

// StartWorker publishes championship.start_due.v1 when a ChampionshipStartJob
// comes due. The championship module performs the activation itself.
type StartWorker struct {
	river.WorkerDefaults[ChampionshipStartJob]
	logger    *slog.Logger
	publisher message.Publisher
}

// NewStartWorker creates a StartWorker.
func NewStartWorker(logger *slog.Logger, publisher message.Publisher) *StartWorker {
	return &StartWorker{logger: logger, publisher: publisher}
}

// Work publishes the start-due event for the job's championship.
func (w *StartWorker) Work(ctx context.Context, job *river.Job[ChampionshipStartJob]) error {
	payload := events.ChampionshipStartDuePayloadV1{ChampionshipID: job.Args.ChampionshipID}
	if job.JobRow != nil {
		payload.ScheduledFor = job.ScheduledAt
	}

	if err := eventbus.PublishJSON(ctx, w.publisher, events.ChampionshipStartDueV1, payload); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish championship start",
			attr.ChampionshipID(job.Args.ChampionshipID),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish championship start: %w", err)
	}

	w.logger.InfoContext(ctx, "Championship start published",
		attr.ChampionshipID(job.Args.ChampionshipID),
	)
	return nil
}
