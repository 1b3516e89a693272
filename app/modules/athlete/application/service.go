package athleteservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	"github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/parsers"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/Black-And-White-Club/slackline-champs/internal/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// AthleteService implements the Service interface.
type AthleteService struct {
	repo          athletedb.Repository
	championships ChampionshipLookup
	brackets      BracketLookup
	parsers       *parsers.Factory
	logger        *slog.Logger
	metrics       metrics.OperationMetrics
	tracer        trace.Tracer
	db            *bun.DB
}

var _ Service = (*AthleteService)(nil)

// NewAthleteService creates a new AthleteService.
func NewAthleteService(
	repo athletedb.Repository,
	championships ChampionshipLookup,
	brackets BracketLookup,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AthleteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AthleteService{
		repo:          repo,
		championships: championships,
		brackets:      brackets,
		parsers:       parsers.NewFactory(),
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		db:            db,
	}
}

type athleteResult = results.OperationResult[*athletedb.Athlete, error]

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	return results.Unwrap(result)
}

// failure routes domain errors to the failure branch.
func failure[S any](err error) (results.OperationResult[S, error], error) {
	if apperrors.IsDomain(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// RegisterAthlete adds one athlete to a championship that is still open.
func (s *AthleteService) RegisterAthlete(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, reg athletedomain.Registration) (*athletedb.Athlete, error) {
	return unwrap(withTelemetry(s, ctx, "RegisterAthlete", championshipID.String(), func(ctx context.Context) (athleteResult, error) {
		normalized, err := reg.Normalize()
		if err != nil {
			return failure[*athletedb.Athlete](err)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (athleteResult, error) {
			if err := s.ensureOpen(ctx, db, caller, championshipID); err != nil {
				return failure[*athletedb.Athlete](err)
			}

			athlete := newAthlete(championshipID, normalized)
			if err := s.repo.Create(ctx, db, athlete); err != nil {
				return athleteResult{}, fmt.Errorf("failed to register athlete: %w", err)
			}
			return results.SuccessResult[*athletedb.Athlete, error](athlete), nil
		})
	}))
}

// ImportAthletes parses a roster and registers every row in one transaction.
func (s *AthleteService) ImportAthletes(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, fileName string, data []byte) (*ImportResult, error) {
	type importResult = results.OperationResult[*ImportResult, error]

	return unwrap(withTelemetry(s, ctx, "ImportAthletes", championshipID.String(), func(ctx context.Context) (importResult, error) {
		parser, err := s.parsers.GetParser(fileName)
		if err != nil {
			return failure[*ImportResult](err)
		}
		entries, err := parser.Parse(data, fileName)
		if err != nil {
			return failure[*ImportResult](err)
		}

		athletes := make([]*athletedb.Athlete, 0, len(entries))
		for _, entry := range entries {
			normalized, err := entry.Registration.Normalize()
			if err != nil {
				rowErr := &athletedomain.RowError{Row: entry.Row, Err: err}
				return failure[*ImportResult](apperrors.Validation(rowErr.Error()))
			}
			athletes = append(athletes, newAthlete(championshipID, normalized))
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (importResult, error) {
			if err := s.ensureOpen(ctx, db, caller, championshipID); err != nil {
				return failure[*ImportResult](err)
			}
			if err := s.repo.Create(ctx, db, athletes...); err != nil {
				return importResult{}, fmt.Errorf("failed to import athletes: %w", err)
			}

			out := &ImportResult{Imported: len(athletes), Athletes: make([]athletedb.Athlete, len(athletes))}
			for i, a := range athletes {
				out.Athletes[i] = *a
			}
			return results.SuccessResult[*ImportResult, error](out), nil
		})
	}))
}

// ListAthletes returns a championship's athletes ordered by name.
func (s *AthleteService) ListAthletes(ctx context.Context, championshipID uuid.UUID) ([]athletedb.Athlete, error) {
	type listResult = results.OperationResult[[]athletedb.Athlete, error]

	return unwrap(withTelemetry(s, ctx, "ListAthletes", championshipID.String(), func(ctx context.Context) (listResult, error) {
		list, err := s.repo.ListByChampionship(ctx, nil, championshipID)
		if err != nil {
			return listResult{}, err
		}
		if list == nil {
			list = []athletedb.Athlete{}
		}
		return results.SuccessResult[[]athletedb.Athlete, error](list), nil
	}))
}

// GetAthlete retrieves an athlete by ID.
func (s *AthleteService) GetAthlete(ctx context.Context, id uuid.UUID) (*athletedb.Athlete, error) {
	return unwrap(withTelemetry(s, ctx, "GetAthlete", id.String(), func(ctx context.Context) (athleteResult, error) {
		a, err := s.repo.GetByID(ctx, nil, id)
		if err != nil {
			if errors.Is(err, athletedb.ErrNotFound) {
				return failure[*athletedb.Athlete](athletedomain.ErrAthleteNotFound)
			}
			return athleteResult{}, err
		}
		return results.SuccessResult[*athletedb.Athlete, error](a), nil
	}))
}

// RemoveAthlete deletes an athlete while registration is still open.
func (s *AthleteService) RemoveAthlete(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) error {
	_, err := unwrap(withTelemetry(s, ctx, "RemoveAthlete", id.String(), func(ctx context.Context) (athleteResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (athleteResult, error) {
			a, err := s.repo.GetByID(ctx, db, id)
			if err != nil {
				if errors.Is(err, athletedb.ErrNotFound) {
					return failure[*athletedb.Athlete](athletedomain.ErrAthleteNotFound)
				}
				return athleteResult{}, err
			}
			if err := s.ensureOpen(ctx, db, caller, a.ChampionshipID); err != nil {
				return failure[*athletedb.Athlete](err)
			}
			if err := s.repo.Delete(ctx, db, id); err != nil {
				return athleteResult{}, fmt.Errorf("failed to remove athlete: %w", err)
			}
			return results.SuccessResult[*athletedb.Athlete, error](a), nil
		})
	}))
	return err
}

// ensureOpen locks the championship and checks the caller may change its
// roster. The lock serializes registration against bracket generation.
func (s *AthleteService) ensureOpen(ctx context.Context, db bun.IDB, caller *authdomain.Claims, championshipID uuid.UUID) error {
	info, err := s.championships.LockChampionship(ctx, db, championshipID)
	if err != nil {
		return fmt.Errorf("failed to lock championship: %w", err)
	}
	if info == nil {
		return athletedomain.ErrChampionshipNotFound
	}
	if !caller.CanManage(info.CreatedBy) {
		return athletedomain.ErrForbidden
	}
	if info.Completed {
		return athletedomain.ErrRegistrationClosed
	}

	hasBracket, err := s.brackets.HasBracket(ctx, db, championshipID)
	if err != nil {
		return fmt.Errorf("failed to check bracket: %w", err)
	}
	if hasBracket {
		return athletedomain.ErrRegistrationClosed
	}
	return nil
}

func newAthlete(championshipID uuid.UUID, reg athletedomain.Registration) *athletedb.Athlete {
	return &athletedb.Athlete{
		ID:             uuid.New(),
		ChampionshipID: championshipID,
		Name:           reg.Name,
		Category:       reg.Category,
		Level:          reg.Level,
		Bio:            reg.Bio,
		AvatarURL:      reg.AvatarURL,
	}
}
