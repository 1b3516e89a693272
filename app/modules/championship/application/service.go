package championshipservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/Black-And-White-Club/slackline-champs/internal/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ChampionshipService implements the Service interface.
type ChampionshipService struct {
	repo       championshipdb.Repository
	athletes   AthleteCounter
	scheduler  Scheduler
	publisher  message.Publisher
	dateParser *championshipdomain.DateParser
	clock      championshipdomain.Clock
	logger     *slog.Logger
	metrics    metrics.OperationMetrics
	tracer     trace.Tracer
	db         *bun.DB
}

var _ Service = (*ChampionshipService)(nil)

// NewChampionshipService creates a new ChampionshipService.
func NewChampionshipService(
	repo championshipdb.Repository,
	athletes AthleteCounter,
	scheduler Scheduler,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ChampionshipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChampionshipService{
		repo:       repo,
		athletes:   athletes,
		scheduler:  scheduler,
		publisher:  publisher,
		dateParser: championshipdomain.NewDateParser(),
		clock:      championshipdomain.RealClock{},
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
	}
}

// WithClock replaces the clock used for date validation and scheduling.
func (s *ChampionshipService) WithClock(clock championshipdomain.Clock) *ChampionshipService {
	s.clock = clock
	return s
}

type championshipResult = results.OperationResult[*championshipdb.Championship, error]

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	return results.Unwrap(result)
}

// CreateChampionship validates and stores a new draft championship, then
// schedules its activation at the championship date.
func (s *ChampionshipService) CreateChampionship(ctx context.Context, creator string, req CreateChampionshipRequest) (*championshipdb.Championship, error) {
	var pending outbox

	created, err := unwrap(withTelemetry(s, ctx, "CreateChampionship", creator, func(ctx context.Context) (championshipResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (championshipResult, error) {
			return s.createChampionshipLogic(ctx, db, creator, req, &pending)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	s.scheduleStart(ctx, created)
	return created, nil
}

func (s *ChampionshipService) createChampionshipLogic(ctx context.Context, db bun.IDB, creator string, req CreateChampionshipRequest, pending *outbox) (championshipResult, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < championshipdomain.MinNameLength {
		return results.FailureResult[*championshipdb.Championship, error](championshipdomain.ErrInvalidName), nil
	}

	date, err := s.dateParser.Parse(req.Date, req.Timezone, s.clock)
	if err != nil {
		return results.FailureResult[*championshipdb.Championship, error](err), nil
	}

	c := &championshipdb.Championship{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Location:    strings.TrimSpace(req.Location),
		CreatedBy:   creator,
		Status:      championshipdomain.StatusDraft,
	}
	if err := s.repo.Create(ctx, db, c); err != nil {
		return championshipResult{}, fmt.Errorf("failed to create championship: %w", err)
	}

	pending.add(events.ChampionshipCreatedV1, events.ChampionshipCreatedPayloadV1{
		ChampionshipID: c.ID,
		Name:           c.Name,
		Date:           c.Date,
		CreatedBy:      c.CreatedBy,
	})
	return results.SuccessResult[*championshipdb.Championship, error](c), nil
}

func (s *ChampionshipService) scheduleStart(ctx context.Context, c *championshipdb.Championship) {
	if s.scheduler == nil {
		return
	}
	if !c.Date.After(s.clock.Now()) {
		return
	}
	if err := s.scheduler.ScheduleChampionshipStart(ctx, c.ID, c.Date); err != nil {
		s.logger.WarnContext(ctx, "Championship start not scheduled",
			attr.ExtractCorrelationID(ctx),
			attr.ChampionshipID(c.ID),
			attr.Error(err),
		)
	}
}

// GetChampionship retrieves a championship by ID.
func (s *ChampionshipService) GetChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error) {
	return unwrap(withTelemetry(s, ctx, "GetChampionship", id.String(), func(ctx context.Context) (championshipResult, error) {
		c, err := s.repo.GetByID(ctx, nil, id)
		if err != nil {
			if errors.Is(err, championshipdb.ErrNotFound) {
				return results.FailureResult[*championshipdb.Championship, error](championshipdomain.ErrChampionshipNotFound), nil
			}
			return championshipResult{}, fmt.Errorf("failed to get championship: %w", err)
		}
		return results.SuccessResult[*championshipdb.Championship, error](c), nil
	}))
}

// ListChampionships returns the creator's championships, newest first,
// optionally filtered by status.
func (s *ChampionshipService) ListChampionships(ctx context.Context, creator string, status string) ([]championshipdb.Championship, error) {
	type listResult = results.OperationResult[[]championshipdb.Championship, error]

	return unwrap(withTelemetry(s, ctx, "ListChampionships", creator, func(ctx context.Context) (listResult, error) {
		var filter *championshipdomain.Status
		if status != "" {
			st := championshipdomain.Status(status)
			if !st.IsValid() {
				return results.FailureResult[[]championshipdb.Championship, error](championshipdomain.ErrInvalidStatus), nil
			}
			filter = &st
		}

		list, err := s.repo.ListByCreator(ctx, nil, creator, filter, 0)
		if err != nil {
			return listResult{}, fmt.Errorf("failed to list championships: %w", err)
		}
		if list == nil {
			list = []championshipdb.Championship{}
		}
		return results.SuccessResult[[]championshipdb.Championship, error](list), nil
	}))
}

// UpdateStatus applies a manual status transition requested by the organizer.
func (s *ChampionshipService) UpdateStatus(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, to championshipdomain.Status) (*championshipdb.Championship, error) {
	var pending outbox

	updated, err := unwrap(withTelemetry(s, ctx, "UpdateStatus", id.String(), func(ctx context.Context) (championshipResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (championshipResult, error) {
			c, err := s.lockOwned(ctx, db, caller, id)
			if err != nil {
				return failureOrError(err)
			}
			if err := championshipdomain.ValidateTransition(c.Status, to); err != nil {
				return results.FailureResult[*championshipdb.Championship, error](err), nil
			}
			if err := s.transition(ctx, db, c, to, nil, &pending); err != nil {
				return championshipResult{}, err
			}
			return results.SuccessResult[*championshipdb.Championship, error](c), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return updated, nil
}

// DeleteChampionship removes a championship with everything registered under
// it and cancels its scheduled jobs.
func (s *ChampionshipService) DeleteChampionship(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error {
	_, err := unwrap(withTelemetry(s, ctx, "DeleteChampionship", id.String(), func(ctx context.Context) (championshipResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (championshipResult, error) {
			c, err := s.lockOwned(ctx, db, caller, id)
			if err != nil {
				return failureOrError(err)
			}
			if err := s.repo.Delete(ctx, db, id); err != nil {
				return championshipResult{}, fmt.Errorf("failed to delete championship: %w", err)
			}
			return results.SuccessResult[*championshipdb.Championship, error](c), nil
		})
	}))
	if err != nil {
		return err
	}

	if s.scheduler != nil {
		if err := s.scheduler.CancelChampionshipJobs(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "Failed to cancel championship jobs",
				attr.ExtractCorrelationID(ctx),
				attr.ChampionshipID(id),
				attr.Error(err),
			)
		}
	}
	return nil
}

// ActivateChampionship moves a draft championship to active.
func (s *ChampionshipService) ActivateChampionship(ctx context.Context, id uuid.UUID) (*championshipdb.Championship, error) {
	var pending outbox

	c, err := unwrap(withTelemetry(s, ctx, "ActivateChampionship", id.String(), func(ctx context.Context) (championshipResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (championshipResult, error) {
			c, err := s.lock(ctx, db, id)
			if err != nil {
				return failureOrError(err)
			}
			if c.Status == championshipdomain.StatusDraft {
				if err := s.transition(ctx, db, c, championshipdomain.StatusActive, nil, &pending); err != nil {
					return championshipResult{}, err
				}
			}
			return results.SuccessResult[*championshipdb.Championship, error](c), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return c, nil
}

// CompleteChampionship records the winner and completes the championship.
// A draft championship passes through active first.
func (s *ChampionshipService) CompleteChampionship(ctx context.Context, id uuid.UUID, winnerID uuid.UUID) (*championshipdb.Championship, error) {
	var pending outbox

	c, err := unwrap(withTelemetry(s, ctx, "CompleteChampionship", id.String(), func(ctx context.Context) (championshipResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (championshipResult, error) {
			c, err := s.lock(ctx, db, id)
			if err != nil {
				return failureOrError(err)
			}
			if c.Status == championshipdomain.StatusDraft {
				if err := s.transition(ctx, db, c, championshipdomain.StatusActive, nil, &pending); err != nil {
					return championshipResult{}, err
				}
			}
			if c.Status == championshipdomain.StatusActive {
				if err := s.transition(ctx, db, c, championshipdomain.StatusCompleted, &winnerID, &pending); err != nil {
					return championshipResult{}, err
				}
			}
			return results.SuccessResult[*championshipdb.Championship, error](c), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return c, nil
}

// GetDashboard summarizes the creator's championships.
func (s *ChampionshipService) GetDashboard(ctx context.Context, creator string) (*Dashboard, error) {
	type dashboardResult = results.OperationResult[*Dashboard, error]

	return unwrap(withTelemetry(s, ctx, "GetDashboard", creator, func(ctx context.Context) (dashboardResult, error) {
		counts, err := s.repo.CountByStatus(ctx, nil, creator)
		if err != nil {
			return dashboardResult{}, fmt.Errorf("failed to count championships: %w", err)
		}

		all, err := s.repo.ListByCreator(ctx, nil, creator, nil, 0)
		if err != nil {
			return dashboardResult{}, fmt.Errorf("failed to list championships: %w", err)
		}

		totalAthletes := 0
		if s.athletes != nil && len(all) > 0 {
			ids := make([]uuid.UUID, len(all))
			for i, c := range all {
				ids[i] = c.ID
			}
			totalAthletes, err = s.athletes.CountByChampionships(ctx, ids)
			if err != nil {
				return dashboardResult{}, fmt.Errorf("failed to count athletes: %w", err)
			}
		}

		recent := all
		if len(recent) > RecentLimit {
			recent = recent[:RecentLimit]
		}
		if recent == nil {
			recent = []championshipdb.Championship{}
		}

		return results.SuccessResult[*Dashboard, error](&Dashboard{
			Counts:        counts,
			Total:         len(all),
			TotalAthletes: totalAthletes,
			Recent:        recent,
			GeneratedAt:   s.clock.Now().UTC(),
		}), nil
	}))
}

// lock fetches a championship FOR UPDATE. A missing row is returned as a
// domain error.
func (s *ChampionshipService) lock(ctx context.Context, db bun.IDB, id uuid.UUID) (*championshipdb.Championship, error) {
	c, err := s.repo.GetByIDForUpdate(ctx, db, id)
	if err != nil {
		if errors.Is(err, championshipdb.ErrNotFound) {
			return nil, championshipdomain.ErrChampionshipNotFound
		}
		return nil, fmt.Errorf("failed to lock championship: %w", err)
	}
	return c, nil
}

// lockOwned is lock plus an ownership check against caller.
func (s *ChampionshipService) lockOwned(ctx context.Context, db bun.IDB, caller *authdomain.Claims, id uuid.UUID) (*championshipdb.Championship, error) {
	c, err := s.lock(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanManage(c.CreatedBy) {
		return nil, championshipdomain.ErrForbidden
	}
	return c, nil
}

func (s *ChampionshipService) transition(ctx context.Context, db bun.IDB, c *championshipdb.Championship, to championshipdomain.Status, winnerID *uuid.UUID, pending *outbox) error {
	from := c.Status
	if err := s.repo.UpdateStatus(ctx, db, c.ID, to, winnerID); err != nil {
		return fmt.Errorf("failed to update championship status: %w", err)
	}
	c.Status = to
	if winnerID != nil {
		c.WinnerID = winnerID
	}
	c.UpdatedAt = time.Now().UTC()

	pending.add(events.ChampionshipStatusChangedV1, events.ChampionshipStatusChangedPayloadV1{
		ChampionshipID: c.ID,
		From:           string(from),
		To:             string(to),
		WinnerID:       winnerID,
	})
	return nil
}

// failureOrError routes domain errors to the failure branch.
func failureOrError(err error) (championshipResult, error) {
	if apperrors.IsDomain(err) {
		return results.FailureResult[*championshipdb.Championship, error](err), nil
	}
	return championshipResult{}, err
}
