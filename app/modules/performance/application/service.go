package performanceservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	performancedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/domain"
	performancedb "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/Black-And-White-Club/slackline-champs/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// PerformanceService implements the Service interface.
type PerformanceService struct {
	repo          performancedb.Repository
	matches       MatchLookup
	championships ChampionshipOwner
	tricks        TrickCatalog
	athletes      AthleteNames
	palette       ChartPalette
	logger        *slog.Logger
	metrics       metrics.OperationMetrics
	tracer        trace.Tracer
	db            *bun.DB
	now           func() time.Time
}

var _ Service = (*PerformanceService)(nil)

// NewPerformanceService creates a new PerformanceService.
func NewPerformanceService(
	repo performancedb.Repository,
	matches MatchLookup,
	championships ChampionshipOwner,
	tricks TrickCatalog,
	athletes AthleteNames,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *PerformanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PerformanceService{
		repo:          repo,
		matches:       matches,
		championships: championships,
		tricks:        tricks,
		athletes:      athletes,
		palette:       DefaultPalette,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		db:            db,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type performanceResult = results.OperationResult[*performancedb.Performance, error]

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	return results.Unwrap(result)
}

func failure[S any](err error) (results.OperationResult[S, error], error) {
	if apperrors.IsDomain(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// SubmitPerformance scores req and stores it against the match.
func (s *PerformanceService) SubmitPerformance(ctx context.Context, caller *authdomain.Claims, matchID uuid.UUID, req SubmitRequest) (*performancedb.Performance, error) {
	return unwrap(withTelemetry(s, ctx, "SubmitPerformance", matchID.String(), func(ctx context.Context) (performanceResult, error) {
		if req.AthleteID == uuid.Nil {
			return failure[*performancedb.Performance](performancedomain.ErrAthleteRequired)
		}
		total, err := performancedomain.Total(req.Tricks)
		if err != nil {
			return failure[*performancedb.Performance](err)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (performanceResult, error) {
			match, err := s.matches.GetMatch(ctx, db, matchID)
			if err != nil {
				return performanceResult{}, fmt.Errorf("failed to load match: %w", err)
			}
			if match == nil {
				return failure[*performancedb.Performance](performancedomain.ErrMatchNotFound)
			}

			owner, ok, err := s.championships.LockOwner(ctx, db, match.ChampionshipID)
			if err != nil {
				return performanceResult{}, fmt.Errorf("failed to lock championship: %w", err)
			}
			if !ok {
				return failure[*performancedb.Performance](performancedomain.ErrMatchNotFound)
			}
			if !caller.CanManage(owner) {
				return failure[*performancedb.Performance](performancedomain.ErrForbidden)
			}

			// Re-read under lock; the match may have completed meanwhile.
			match, err = s.matches.LockMatch(ctx, db, matchID)
			if err != nil {
				return performanceResult{}, fmt.Errorf("failed to lock match: %w", err)
			}
			if match == nil {
				return failure[*performancedb.Performance](performancedomain.ErrMatchNotFound)
			}
			if !match.InProgress {
				return failure[*performancedb.Performance](performancedomain.ErrMatchNotInProgress)
			}
			if !match.HasAthlete(req.AthleteID) {
				return failure[*performancedb.Performance](performancedomain.ErrAthleteNotInMatch)
			}

			ids := performancedomain.TrickIDs(req.Tricks)
			known, err := s.tricks.Existing(ctx, db, ids)
			if err != nil {
				return performanceResult{}, fmt.Errorf("failed to look up tricks: %w", err)
			}
			for _, id := range ids {
				if !known[id] {
					return failure[*performancedb.Performance](fmt.Errorf("%w: %s", performancedomain.ErrUnknownTrick, id))
				}
			}

			now := s.now()
			p := &performancedb.Performance{
				ID:             uuid.New(),
				AthleteID:      req.AthleteID,
				ChampionshipID: match.ChampionshipID,
				MatchID:        matchID,
				Tricks:         req.Tricks,
				TotalScore:     total,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := s.repo.Upsert(ctx, db, p); err != nil {
				return performanceResult{}, fmt.Errorf("failed to store performance: %w", err)
			}
			return results.SuccessResult[*performancedb.Performance, error](p), nil
		})
	}))
}

// ListPerformances returns a match's performances, highest total first.
func (s *PerformanceService) ListPerformances(ctx context.Context, matchID uuid.UUID) ([]performancedb.Performance, error) {
	type listResult = results.OperationResult[[]performancedb.Performance, error]

	return unwrap(withTelemetry(s, ctx, "ListPerformances", matchID.String(), func(ctx context.Context) (listResult, error) {
		match, err := s.matches.GetMatch(ctx, nil, matchID)
		if err != nil {
			return listResult{}, fmt.Errorf("failed to load match: %w", err)
		}
		if match == nil {
			return failure[[]performancedb.Performance](performancedomain.ErrMatchNotFound)
		}

		list, err := s.repo.ListByMatch(ctx, nil, matchID)
		if err != nil {
			return listResult{}, err
		}
		if list == nil {
			list = []performancedb.Performance{}
		}
		return results.SuccessResult[[]performancedb.Performance, error](list), nil
	}))
}

// ScoreChart renders each athlete's best total in the championship.
func (s *PerformanceService) ScoreChart(ctx context.Context, championshipID uuid.UUID) ([]byte, error) {
	type chartResult = results.OperationResult[[]byte, error]

	return unwrap(withTelemetry(s, ctx, "ScoreChart", championshipID.String(), func(ctx context.Context) (chartResult, error) {
		best, err := s.repo.BestByChampionship(ctx, nil, championshipID)
		if err != nil {
			return chartResult{}, err
		}
		names, err := s.athletes.Names(ctx, nil, championshipID)
		if err != nil {
			return chartResult{}, fmt.Errorf("failed to load athlete names: %w", err)
		}

		bars := make([]ScoreBar, 0, len(best))
		for _, b := range best {
			name, ok := names[b.AthleteID]
			if !ok {
				name = b.AthleteID.String()[:8]
			}
			bars = append(bars, ScoreBar{Name: name, Score: b.Best})
		}

		png, err := GenerateScoreChart(bars, s.palette)
		if err != nil {
			return chartResult{}, fmt.Errorf("failed to render chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	}))
}
