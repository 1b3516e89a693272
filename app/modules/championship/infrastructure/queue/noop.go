package championshipqueue

import (
	"context"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/google/uuid"
)

// NoopService stands in for the queue when scheduling is disabled.
// Championships are then activated only by bracket generation or by hand.
type NoopService struct {
	logger *slog.Logger
}

var _ QueueService = (*NoopService)(nil)

func NewNoopService(logger *slog.Logger) *NoopService {
	return &NoopService{logger: logger}
}

func (n *NoopService) ScheduleChampionshipStart(ctx context.Context, championshipID uuid.UUID, startTime time.Time) error {
	n.logger.DebugContext(ctx, "Queue disabled, not scheduling championship start",
		attr.ChampionshipID(championshipID),
		attr.Time("start_time", startTime))
	return nil
}

func (n *NoopService) CancelChampionshipJobs(context.Context, uuid.UUID) error { return nil }

func (n *NoopService) GetScheduledJobs(context.Context, uuid.UUID) ([]JobInfo, error) {
	return nil, nil
}

func (n *NoopService) HealthCheck(context.Context) error { return nil }
func (n *NoopService) Start(context.Context) error       { return nil }
func (n *NoopService) Stop(context.Context) error        { return nil }
