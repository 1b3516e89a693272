package trickservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/Black-And-White-Club/slackline-champs/internal/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TrickService implements the Service interface.
type TrickService struct {
	repo    trickdb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

var _ Service = (*TrickService)(nil)

// NewTrickService creates a new TrickService.
func NewTrickService(repo trickdb.Repository, logger *slog.Logger, metrics metrics.OperationMetrics, tracer trace.Tracer) *TrickService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrickService{repo: repo, logger: logger, metrics: metrics, tracer: tracer}
}

type trickResult = results.OperationResult[*trickdb.Trick, error]

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	return results.Unwrap(result)
}

func (s *TrickService) ListTricks(ctx context.Context, query string, trickType string) ([]trickdb.Trick, error) {
	type listResult = results.OperationResult[[]trickdb.Trick, error]

	return unwrap(withTelemetry(s, ctx, "ListTricks", query, func(ctx context.Context) (listResult, error) {
		filter := trickdb.Filter{Query: query}
		if trickType != "" {
			t := trickdomain.Type(strings.ToLower(strings.TrimSpace(trickType)))
			if !t.IsValid() {
				return results.FailureResult[[]trickdb.Trick, error](trickdomain.ErrInvalidType), nil
			}
			filter.Type = t
		}

		list, err := s.repo.List(ctx, nil, filter)
		if err != nil {
			return listResult{}, err
		}
		if list == nil {
			list = []trickdb.Trick{}
		}
		return results.SuccessResult[[]trickdb.Trick, error](list), nil
	}))
}

func (s *TrickService) CreateTrick(ctx context.Context, caller *authdomain.Claims, def trickdomain.Definition) (*trickdb.Trick, error) {
	return unwrap(withTelemetry(s, ctx, "CreateTrick", def.Name, func(ctx context.Context) (trickResult, error) {
		if caller == nil || caller.Role != authdomain.RoleAdmin {
			return results.FailureResult[*trickdb.Trick, error](trickdomain.ErrForbidden), nil
		}
		normalized, err := def.Normalize()
		if err != nil {
			return results.FailureResult[*trickdb.Trick, error](err), nil
		}

		t := newTrick(normalized)
		if err := s.repo.Create(ctx, nil, t); err != nil {
			if errors.Is(err, trickdb.ErrDuplicateName) {
				return results.FailureResult[*trickdb.Trick, error](trickdomain.ErrTrickExists), nil
			}
			return trickResult{}, err
		}
		return results.SuccessResult[*trickdb.Trick, error](t), nil
	}))
}

func (s *TrickService) GetTrick(ctx context.Context, id uuid.UUID) (*trickdb.Trick, error) {
	return unwrap(withTelemetry(s, ctx, "GetTrick", id.String(), func(ctx context.Context) (trickResult, error) {
		t, err := s.repo.GetByID(ctx, nil, id)
		if err != nil {
			if errors.Is(err, trickdb.ErrNotFound) {
				return results.FailureResult[*trickdb.Trick, error](trickdomain.ErrTrickNotFound), nil
			}
			return trickResult{}, err
		}
		return results.SuccessResult[*trickdb.Trick, error](t), nil
	}))
}

func (s *TrickService) SeedDefaults(ctx context.Context) (int, error) {
	return unwrap(withTelemetry(s, ctx, "SeedDefaults", "default", func(ctx context.Context) (results.OperationResult[int, error], error) {
		tricks := make([]*trickdb.Trick, 0, len(trickdomain.DefaultCatalog))
		for _, def := range trickdomain.DefaultCatalog {
			normalized, err := def.Normalize()
			if err != nil {
				return results.OperationResult[int, error]{}, apperrors.Validation(def.Name + ": " + err.Error())
			}
			tricks = append(tricks, newTrick(normalized))
		}
		added, err := s.repo.Seed(ctx, nil, tricks)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](added), nil
	}))
}

func newTrick(def trickdomain.Definition) *trickdb.Trick {
	return &trickdb.Trick{
		ID:          uuid.New(),
		Name:        def.Name,
		Type:        def.Type,
		BasePoints:  def.BasePoints,
		Description: def.Description,
	}
}
