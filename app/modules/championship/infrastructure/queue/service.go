package championshipqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// MinLead is the smallest delay a start job can be scheduled with.
const MinLead = 5 * time.Second

// ErrTooSoon is returned when a start time leaves less than MinLead.
var ErrTooSoon = errors.New("start time must be at least 5 seconds in the future")

// QueueService defines the contract for championship job scheduling.
type QueueService interface {
	// ScheduleChampionshipStart schedules activation of a championship at startTime.
	ScheduleChampionshipStart(ctx context.Context, championshipID uuid.UUID, startTime time.Time) error
	// CancelChampionshipJobs cancels every pending job of a championship.
	CancelChampionshipJobs(ctx context.Context, championshipID uuid.UUID) error
	// GetScheduledJobs returns the jobs of a championship (for debugging).
	GetScheduledJobs(ctx context.Context, championshipID uuid.UUID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

// Ensure Service implements QueueService
var _ QueueService = (*Service)(nil)

// Service handles job scheduling for the championship module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics metrics.OperationMetrics
	now     func() time.Time
}

// NewService creates a River-based queue service. Workers publish through publisher.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, maxWorkers int, m metrics.OperationMetrics, publisher message.Publisher) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_championship_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", "river")

	ctxLogger.Info("Initializing championship queue service")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewStartWorker(ctxLogger, publisher))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
			QueueName:          {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		m.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: m,
		now:     time.Now,
	}

	m.RecordOperationSuccess(ctx, "initialize_service", "river")
	m.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Championship queue service initialized successfully")
	return service, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	s.logger.Info("Starting championship queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))

	s.logger.Info("Championship queue service started successfully")
	return nil
}

// Stop stops the River client and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")

	s.logger.Info("Stopping championship queue service")

	err := s.client.Stop(ctx)
	s.pool.Close()
	if err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", time.Since(start))

	s.logger.Info("Championship queue service stopped successfully")
	return nil
}

// ScheduleChampionshipStart schedules a start job at startTime.
func (s *Service) ScheduleChampionshipStart(ctx context.Context, championshipID uuid.UUID, startTime time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_championship_start", "river")

	ctxLogger := s.logger.With(
		attr.ChampionshipID(championshipID),
		attr.Time("start_time", startTime),
		attr.String("operation", "schedule_championship_start"),
	)

	ctxLogger.Info("Scheduling championship start job")

	now := s.now()
	if startTime.Before(now.Add(MinLead)) {
		ctxLogger.Warn("Championship start time is too close to current time",
			attr.Time("current_time", now),
			attr.Duration("buffer", startTime.Sub(now)))
		s.metrics.RecordOperationFailure(ctx, "schedule_championship_start", "river")
		return ErrTooSoon
	}

	jobResult, err := s.client.Insert(ctx, ChampionshipStartJob{ChampionshipID: championshipID}, &river.InsertOpts{
		Queue:       QueueName,
		ScheduledAt: startTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule championship start job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_championship_start", "river")
		return fmt.Errorf("failed to schedule championship start job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_championship_start", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_championship_start", "river", time.Since(start))

	ctxLogger.Info("Championship start job scheduled successfully",
		attr.Duration("delay", startTime.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

type riverJobRow struct {
	ID          int64      `bun:"id"`
	Kind        string     `bun:"kind"`
	State       string     `bun:"state"`
	ScheduledAt *time.Time `bun:"scheduled_at"`
	CreatedAt   time.Time  `bun:"created_at"`
	Attempt     int16      `bun:"attempt"`
	MaxAttempts int16      `bun:"max_attempts"`
}

// CancelChampionshipJobs cancels all available or scheduled jobs of a championship.
func (s *Service) CancelChampionshipJobs(ctx context.Context, championshipID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_championship_jobs", "river")

	ctxLogger := s.logger.With(
		attr.ChampionshipID(championshipID),
		attr.String("operation", "cancel_championship_jobs"),
	)

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at").
		Where("kind IN (?)", bun.In([]string{kindChampionshipStart})).
		Where("state IN (?)", bun.In([]string{"available", "scheduled"})).
		Where("args->>'championship_id' = ?", championshipID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query jobs for cancellation", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "cancel_championship_jobs", "river")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			ctxLogger.Warn("Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.String("job_kind", job.Kind),
				attr.Error(err))
			continue
		}
		cancelled++
	}

	if cancelled == len(jobs) {
		s.metrics.RecordOperationSuccess(ctx, "cancel_championship_jobs", "river")
	} else {
		s.metrics.RecordOperationFailure(ctx, "cancel_championship_jobs", "river")
	}
	s.metrics.RecordOperationDuration(ctx, "cancel_championship_jobs", "river", time.Since(start))

	ctxLogger.Info("Jobs cancellation completed",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelled))
	return nil
}

// GetScheduledJobs returns information about a championship's jobs.
func (s *Service) GetScheduledJobs(ctx context.Context, championshipID uuid.UUID) ([]JobInfo, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "get_scheduled_jobs", "river")

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind IN (?)", bun.In([]string{kindChampionshipStart})).
		Where("args->>'championship_id' = ?", championshipID.String()).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		s.logger.Error("Failed to query scheduled jobs", attr.ChampionshipID(championshipID), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "get_scheduled_jobs", "river")
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:             job.ID,
			Kind:           job.Kind,
			ChampionshipID: championshipID.String(),
			State:          job.State,
			ScheduledAt:    scheduledAt,
			CreatedAt:      job.CreatedAt.Format(time.RFC3339),
			Attempt:        int(job.Attempt),
			MaxAttempts:    int(job.MaxAttempts),
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "get_scheduled_jobs", "river")
	s.metrics.RecordOperationDuration(ctx, "get_scheduled_jobs", "river", time.Since(start))
	return result, nil
}

// HealthCheck verifies River's job table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "health_check", "river")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "health_check", "river")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "health_check", "river")
	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client.
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
