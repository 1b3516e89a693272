package bracketservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
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

// BracketService implements the Service interface.
type BracketService struct {
	repo          bracketdb.Repository
	championships ChampionshipLookup
	athletes      AthleteSource
	performances  PerformanceTotals
	seeder        *bracketdomain.Seeder
	defaultLayout bracketdomain.Layout
	publisher     message.Publisher
	now           func() time.Time
	logger        *slog.Logger
	metrics       metrics.OperationMetrics
	tracer        trace.Tracer
	db            *bun.DB
}

var _ Service = (*BracketService)(nil)

// NewBracketService creates a new BracketService. A nil seeder uses the
// runtime-seeded random source.
func NewBracketService(
	repo bracketdb.Repository,
	championships ChampionshipLookup,
	athletes AthleteSource,
	performances PerformanceTotals,
	seeder *bracketdomain.Seeder,
	defaultLayout bracketdomain.Layout,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *BracketService {
	if logger == nil {
		logger = slog.Default()
	}
	if seeder == nil {
		seeder = bracketdomain.NewSeeder(nil)
	}
	if defaultLayout == "" {
		defaultLayout = bracketdomain.LayoutCompact
	}
	return &BracketService{
		repo:          repo,
		championships: championships,
		athletes:      athletes,
		performances:  performances,
		seeder:        seeder,
		defaultLayout: defaultLayout,
		publisher:     publisher,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		db:            db,
	}
}

type (
	bracketResult = results.OperationResult[*Bracket, error]
	matchResult   = results.OperationResult[*bracketdb.Match, error]
)

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	return results.Unwrap(result)
}

// failure routes domain errors to the failure branch. A failure commits the
// surrounding transaction, so it must only be returned before any write.
func failure[S any](err error) (results.OperationResult[S, error], error) {
	if apperrors.IsDomain(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// GenerateBracket seeds the championship's roster into a new bracket.
func (s *BracketService) GenerateBracket(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, req GenerateRequest) (*Bracket, error) {
	var pending outbox

	bracket, err := unwrap(withTelemetry(s, ctx, "GenerateBracket", championshipID.String(), func(ctx context.Context) (bracketResult, error) {
		layout, err := bracketdomain.ParseLayout(req.Layout, s.defaultLayout)
		if err != nil {
			return failure[*Bracket](err)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (bracketResult, error) {
			if _, err := s.lockManaged(ctx, db, caller, championshipID); err != nil {
				return failure[*Bracket](err)
			}

			existing, err := s.repo.CountByChampionship(ctx, db, championshipID)
			if err != nil {
				return bracketResult{}, err
			}
			if existing > 0 && !req.Overwrite {
				return failure[*Bracket](bracketdomain.ErrBracketExists)
			}

			athleteIDs, err := s.athletes.ListIDs(ctx, db, championshipID)
			if err != nil {
				return bracketResult{}, fmt.Errorf("failed to list athletes: %w", err)
			}

			planned, err := s.seeder.Seed(athleteIDs, layout)
			if err != nil {
				return failure[*Bracket](err)
			}

			now := s.now()
			rows, err := buildMatches(ctx, championshipID, planned, now)
			if err != nil {
				return bracketResult{}, err
			}

			if existing > 0 {
				if _, err := s.repo.DeleteByChampionship(ctx, db, championshipID); err != nil {
					return bracketResult{}, err
				}
			}
			if err := s.repo.InsertMatches(ctx, db, rows); err != nil {
				return bracketResult{}, err
			}

			byes := 0
			for _, p := range planned {
				if p.Round == 1 && p.IsBye() {
					byes++
				}
			}
			pending.add(events.BracketGeneratedV1, events.BracketGeneratedPayloadV1{
				ChampionshipID: championshipID,
				Layout:         string(layout),
				Athletes:       len(athleteIDs),
				Rounds:         bracketdomain.NumRounds(len(athleteIDs)),
				Matches:        len(rows),
				Byes:           byes,
				Overwritten:    existing > 0,
			})

			matches := make([]bracketdb.Match, len(rows))
			for i, m := range rows {
				matches[i] = *m
			}
			names, err := s.athletes.Names(ctx, db, championshipID)
			if err != nil {
				return bracketResult{}, fmt.Errorf("failed to load athlete names: %w", err)
			}
			return results.SuccessResult[*Bracket, error](assemble(championshipID, matches, names)), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return bracket, nil
}

// GetBracket returns the stored bracket grouped by round.
func (s *BracketService) GetBracket(ctx context.Context, championshipID uuid.UUID) (*Bracket, error) {
	return unwrap(withTelemetry(s, ctx, "GetBracket", championshipID.String(), func(ctx context.Context) (bracketResult, error) {
		matches, err := s.repo.ListByChampionship(ctx, nil, championshipID)
		if err != nil {
			return bracketResult{}, err
		}
		if len(matches) == 0 {
			return failure[*Bracket](bracketdomain.ErrBracketNotFound)
		}
		names, err := s.athletes.Names(ctx, nil, championshipID)
		if err != nil {
			return bracketResult{}, fmt.Errorf("failed to load athlete names: %w", err)
		}
		return results.SuccessResult[*Bracket, error](assemble(championshipID, matches, names)), nil
	}))
}

// ResetBracket deletes every match of a championship that is not completed.
func (s *BracketService) ResetBracket(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID) error {
	_, err := unwrap(withTelemetry(s, ctx, "ResetBracket", championshipID.String(), func(ctx context.Context) (results.OperationResult[int, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
			if _, err := s.lockManaged(ctx, db, caller, championshipID); err != nil {
				return failure[int](err)
			}
			deleted, err := s.repo.DeleteByChampionship(ctx, db, championshipID)
			if err != nil {
				return results.OperationResult[int, error]{}, err
			}
			return results.SuccessResult[int, error](deleted), nil
		})
	}))
	return err
}

// GetMatch returns one match with athlete names.
func (s *BracketService) GetMatch(ctx context.Context, id uuid.UUID) (*MatchView, error) {
	type viewResult = results.OperationResult[*MatchView, error]

	return unwrap(withTelemetry(s, ctx, "GetMatch", id.String(), func(ctx context.Context) (viewResult, error) {
		m, err := s.getMatch(ctx, nil, id, false)
		if err != nil {
			return failure[*MatchView](err)
		}
		names, err := s.athletes.Names(ctx, nil, m.ChampionshipID)
		if err != nil {
			return viewResult{}, fmt.Errorf("failed to load athlete names: %w", err)
		}
		view := newMatchView(*m, names)
		return results.SuccessResult[*MatchView, error](&view), nil
	}))
}

// StartMatch moves a pending match with two athletes to in_progress.
func (s *BracketService) StartMatch(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) (*bracketdb.Match, error) {
	return unwrap(withTelemetry(s, ctx, "StartMatch", id.String(), func(ctx context.Context) (matchResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (matchResult, error) {
			m, err := s.lockMatch(ctx, db, caller, id)
			if err != nil {
				return failure[*bracketdb.Match](err)
			}
			if m.Status == bracketdomain.StatusPending && (m.Athlete1ID == nil || m.Athlete2ID == nil) {
				return failure[*bracketdb.Match](bracketdomain.ErrMatchNotReady)
			}
			if err := bracketdomain.ValidateTransition(m.Status, bracketdomain.StatusInProgress); err != nil {
				return failure[*bracketdb.Match](err)
			}

			started := s.now()
			m.Status = bracketdomain.StatusInProgress
			m.StartedAt = &started
			if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
				return matchResult{}, err
			}
			return results.SuccessResult[*bracketdb.Match, error](m), nil
		})
	}))
}

// RecordResult completes an in-progress match with the given winner.
func (s *BracketService) RecordResult(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, winnerID uuid.UUID) (*bracketdb.Match, error) {
	var pending outbox

	m, err := unwrap(withTelemetry(s, ctx, "RecordResult", id.String(), func(ctx context.Context) (matchResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (matchResult, error) {
			m, err := s.lockMatch(ctx, db, caller, id)
			if err != nil {
				return failure[*bracketdb.Match](err)
			}
			if err := bracketdomain.ValidateTransition(m.Status, bracketdomain.StatusCompleted); err != nil {
				return failure[*bracketdb.Match](err)
			}
			if !m.HasAthlete(winnerID) {
				return failure[*bracketdb.Match](bracketdomain.ErrWinnerNotInMatch)
			}
			return s.complete(ctx, db, m, winnerID, &pending)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return m, nil
}

// DecideMatch completes an in-progress match from performance totals.
func (s *BracketService) DecideMatch(ctx context.Context, caller *authdomain.Claims, id uuid.UUID) (*bracketdb.Match, error) {
	var pending outbox

	m, err := unwrap(withTelemetry(s, ctx, "DecideMatch", id.String(), func(ctx context.Context) (matchResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (matchResult, error) {
			m, err := s.lockMatch(ctx, db, caller, id)
			if err != nil {
				return failure[*bracketdb.Match](err)
			}
			if err := bracketdomain.ValidateTransition(m.Status, bracketdomain.StatusCompleted); err != nil {
				return failure[*bracketdb.Match](err)
			}

			totals, err := s.performances.TotalsByMatch(ctx, db, m.ID)
			if err != nil {
				return matchResult{}, fmt.Errorf("failed to load performance totals: %w", err)
			}
			winner, ok := leader(m, totals)
			if !ok {
				return failure[*bracketdb.Match](bracketdomain.ErrUndecidedMatch)
			}
			return s.complete(ctx, db, m, winner, &pending)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, pending)
	return m, nil
}

// complete writes the winner and advances it through the bracket.
func (s *BracketService) complete(ctx context.Context, db bun.IDB, m *bracketdb.Match, winnerID uuid.UUID, pending *outbox) (matchResult, error) {
	now := s.now()
	winner := winnerID
	m.WinnerID = &winner
	m.Status = bracketdomain.StatusCompleted
	m.CompletedAt = &now
	if err := s.repo.UpdateMatch(ctx, db, m); err != nil {
		return matchResult{}, err
	}

	adv, err := advance(ctx, dbStore{repo: s.repo, db: db}, m, now)
	if err != nil {
		return matchResult{}, fmt.Errorf("failed to advance winner: %w", err)
	}

	pending.add(events.BracketMatchCompletedV1, events.MatchCompletedPayloadV1{
		ChampionshipID: m.ChampionshipID,
		MatchID:        m.ID,
		Round:          m.Round,
		WinnerID:       winnerID,
		AutoAdvanced:   adv.autoAdvanced,
	})
	if adv.final != nil {
		s.logger.InfoContext(ctx, "Bracket completed",
			attr.ExtractCorrelationID(ctx),
			attr.ChampionshipID(m.ChampionshipID),
			attr.UUID("champion_id", *adv.final.WinnerID),
		)
		pending.add(events.BracketCompletedV1, events.BracketCompletedPayloadV1{
			ChampionshipID: m.ChampionshipID,
			FinalMatchID:   adv.final.ID,
			ChampionID:     *adv.final.WinnerID,
		})
	}
	return results.SuccessResult[*bracketdb.Match, error](m), nil
}

// leader returns the match athlete with the strictly higher total. Both
// athletes must have a performance.
func leader(m *bracketdb.Match, totals map[uuid.UUID]float64) (uuid.UUID, bool) {
	if m.Athlete1ID == nil || m.Athlete2ID == nil {
		return uuid.Nil, false
	}
	t1, ok1 := totals[*m.Athlete1ID]
	t2, ok2 := totals[*m.Athlete2ID]
	switch {
	case !ok1 || !ok2 || t1 == t2:
		return uuid.Nil, false
	case t1 > t2:
		return *m.Athlete1ID, true
	default:
		return *m.Athlete2ID, true
	}
}

// lockManaged locks the championship and checks the caller may change its
// bracket.
func (s *BracketService) lockManaged(ctx context.Context, db bun.IDB, caller *authdomain.Claims, championshipID uuid.UUID) (*ChampionshipInfo, error) {
	info, err := s.championships.LockChampionship(ctx, db, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock championship: %w", err)
	}
	if info == nil {
		return nil, bracketdomain.ErrChampionshipNotFound
	}
	if !caller.CanManage(info.CreatedBy) {
		return nil, bracketdomain.ErrForbidden
	}
	if info.Completed {
		return nil, bracketdomain.ErrChampionshipCompleted
	}
	return info, nil
}

// lockMatch locks the match's championship and then the match itself. Every
// bracket write takes the championship lock first.
func (s *BracketService) lockMatch(ctx context.Context, db bun.IDB, caller *authdomain.Claims, id uuid.UUID) (*bracketdb.Match, error) {
	m, err := s.getMatch(ctx, db, id, false)
	if err != nil {
		return nil, err
	}
	if _, err := s.lockManaged(ctx, db, caller, m.ChampionshipID); err != nil {
		return nil, err
	}
	return s.getMatch(ctx, db, id, true)
}

func (s *BracketService) getMatch(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (*bracketdb.Match, error) {
	var (
		m   *bracketdb.Match
		err error
	)
	if lock {
		m, err = s.repo.GetByIDForUpdate(ctx, db, id)
	} else {
		m, err = s.repo.GetByID(ctx, db, id)
	}
	if err != nil {
		if errors.Is(err, bracketdb.ErrNotFound) {
			return nil, bracketdomain.ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

// assemble groups matches, already ordered by round and position, into rounds.
func assemble(championshipID uuid.UUID, matches []bracketdb.Match, names map[uuid.UUID]string) *Bracket {
	b := &Bracket{ChampionshipID: championshipID, Rounds: []Round{}}
	numRounds := 0
	for _, m := range matches {
		numRounds = max(numRounds, m.Round)
	}

	for _, m := range matches {
		if len(b.Rounds) == 0 || b.Rounds[len(b.Rounds)-1].Number != m.Round {
			b.Rounds = append(b.Rounds, Round{
				Number: m.Round,
				Name:   bracketdomain.RoundName(m.Round, numRounds),
			})
		}
		last := &b.Rounds[len(b.Rounds)-1]
		last.Matches = append(last.Matches, newMatchView(m, names))

		if m.IsFinal() && m.Status == bracketdomain.StatusCompleted && m.WinnerID != nil {
			champion := *m.WinnerID
			b.ChampionID = &champion
			b.ChampionName = names[champion]
			b.Complete = true
		}
	}
	return b
}

func newMatchView(m bracketdb.Match, names map[uuid.UUID]string) MatchView {
	view := MatchView{Match: m}
	if m.Athlete1ID != nil {
		view.Athlete1Name = names[*m.Athlete1ID]
	}
	if m.Athlete2ID != nil {
		view.Athlete2Name = names[*m.Athlete2ID]
	}
	if m.WinnerID != nil {
		view.WinnerName = names[*m.WinnerID]
	}
	return view
}
