package bracketservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/events"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var organizer = &authdomain.Claims{Subject: "organizer-1", Role: authdomain.RoleAuthenticated}

type testDeps struct {
	repo          *FakeBracketRepo
	championships *FakeChampionshipLookup
	athletes      *FakeAthleteSource
	performances  *FakePerformanceTotals
	publisher     *FakePublisher
}

func newTestService(t *testing.T, championshipID uuid.UUID, athletes int, seed uint64) (*BracketService, testDeps) {
	t.Helper()
	deps := testDeps{
		repo:          NewFakeBracketRepo(),
		championships: &FakeChampionshipLookup{Info: &ChampionshipInfo{ID: championshipID, CreatedBy: "organizer-1"}},
		athletes:      NewFakeAthleteSource(athletes),
		performances:  &FakePerformanceTotals{},
		publisher:     &FakePublisher{},
	}
	svc := NewBracketService(
		deps.repo,
		deps.championships,
		deps.athletes,
		deps.performances,
		bracketdomain.NewSeeder(rand.New(rand.NewPCG(seed, seed+1))),
		bracketdomain.LayoutCompact,
		deps.publisher,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NewNoop(),
		nil,
		nil,
	)
	return svc, deps
}

func countByRound(b *Bracket) []int {
	out := make([]int, len(b.Rounds))
	for i, r := range b.Rounds {
		out[i] = len(r.Matches)
	}
	return out
}

func TestGenerateBracket_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		athletes   int
		layout     string
		wantRounds []int
		wantNames  []string
		wantByes   int
	}{
		{name: "two athletes", athletes: 2, wantRounds: []int{1}, wantNames: []string{"Final"}},
		{name: "four athletes", athletes: 4, wantRounds: []int{2, 1}, wantNames: []string{"Semifinal", "Final"}},
		{name: "five athletes compact", athletes: 5, wantRounds: []int{3, 2, 1}, wantNames: []string{"Quarterfinal", "Semifinal", "Final"}, wantByes: 1},
		{name: "six athletes balanced", athletes: 6, layout: "balanced", wantRounds: []int{4, 2, 1}, wantNames: []string{"Quarterfinal", "Semifinal", "Final"}, wantByes: 2},
		{name: "seventeen athletes compact", athletes: 17, wantRounds: []int{9, 5, 3, 2, 1}, wantNames: []string{"Round 1", "Round 2", "Quarterfinal", "Semifinal", "Final"}, wantByes: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			championshipID := uuid.New()
			svc, deps := newTestService(t, championshipID, tt.athletes, 7)

			b, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{Layout: tt.layout})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRounds, countByRound(b))
			names := make([]string, len(b.Rounds))
			for i, r := range b.Rounds {
				names[i] = r.Name
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, []string{"CountByChampionship", "InsertMatches"}, deps.repo.Trace())

			seen := map[uuid.UUID]int{}
			byes := 0
			for _, m := range b.Rounds[0].Matches {
				for _, id := range []*uuid.UUID{m.Athlete1ID, m.Athlete2ID} {
					if id != nil {
						seen[*id]++
					}
				}
				if (m.Athlete1ID == nil) != (m.Athlete2ID == nil) {
					byes++
					assert.Equal(t, bracketdomain.StatusCompleted, m.Status)
					assert.NotNil(t, m.WinnerID)
				}
			}
			assert.Len(t, seen, tt.athletes)
			for id, n := range seen {
				assert.Equal(t, 1, n, "athlete %s", id)
			}
			assert.Equal(t, tt.wantByes, byes)

			require.Len(t, deps.publisher.Topics, 1)
			assert.Equal(t, events.BracketGeneratedV1, deps.publisher.Topics[0])
			var payload events.BracketGeneratedPayloadV1
			require.NoError(t, json.Unmarshal(deps.publisher.Messages[0].Payload, &payload))
			assert.Equal(t, tt.athletes, payload.Athletes)
			assert.Equal(t, tt.wantByes, payload.Byes)
		})
	}
}

func TestGenerateBracket_ByesAlreadyAdvanced(t *testing.T) {
	championshipID := uuid.New()
	svc, deps := newTestService(t, championshipID, 5, 3)

	_, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)

	bye := deps.repo.find(1, 2)
	require.NotNil(t, bye)
	require.NotNil(t, bye.WinnerID)

	// (2,1) has a single feeder so it completes as a bye too.
	carry := deps.repo.find(2, 1)
	require.NotNil(t, carry)
	assert.Equal(t, 1, carry.Feeders)
	assert.Equal(t, bracketdomain.StatusCompleted, carry.Status)
	assert.Equal(t, *bye.WinnerID, *carry.Athlete1ID)
	assert.Equal(t, *bye.WinnerID, *carry.WinnerID)

	final := deps.repo.find(3, 0)
	require.NotNil(t, final)
	assert.Nil(t, final.Athlete1ID)
	require.NotNil(t, final.Athlete2ID)
	assert.Equal(t, *bye.WinnerID, *final.Athlete2ID)
	assert.Equal(t, bracketdomain.StatusPending, final.Status)
	assert.Nil(t, final.NextMatchID)
}

func TestGenerateBracket_Failures(t *testing.T) {
	tests := []struct {
		name      string
		athletes  int
		req       GenerateRequest
		setup     func(*testing.T, *BracketService, testDeps, uuid.UUID)
		wantErr   error
		wantKind  apperrors.Kind
		wantTrace []string
	}{
		{
			name:      "no athletes",
			athletes:  0,
			wantErr:   bracketdomain.ErrInsufficientAthletes,
			wantTrace: []string{"CountByChampionship"},
		},
		{
			name:      "one athlete",
			athletes:  1,
			wantErr:   bracketdomain.ErrInsufficientAthletes,
			wantTrace: []string{"CountByChampionship"},
		},
		{
			name:     "unknown layout",
			athletes: 4,
			req:      GenerateRequest{Layout: "swiss"},
			wantErr:  bracketdomain.ErrUnknownLayout,
		},
		{
			name:     "championship missing",
			athletes: 4,
			setup: func(_ *testing.T, _ *BracketService, d testDeps, _ uuid.UUID) {
				d.championships.Info = nil
			},
			wantErr: bracketdomain.ErrChampionshipNotFound,
		},
		{
			name:     "not the organizer",
			athletes: 4,
			setup: func(_ *testing.T, _ *BracketService, d testDeps, _ uuid.UUID) {
				d.championships.Info.CreatedBy = "someone-else"
			},
			wantErr: bracketdomain.ErrForbidden,
		},
		{
			name:     "championship completed",
			athletes: 4,
			setup: func(_ *testing.T, _ *BracketService, d testDeps, _ uuid.UUID) {
				d.championships.Info.Completed = true
			},
			wantErr: bracketdomain.ErrChampionshipCompleted,
		},
		{
			name:     "bracket exists without overwrite",
			athletes: 4,
			setup: func(t *testing.T, s *BracketService, d testDeps, id uuid.UUID) {
				_, err := s.GenerateBracket(context.Background(), organizer, id, GenerateRequest{})
				require.NoError(t, err)
				d.repo.ResetTrace()
			},
			wantErr:   bracketdomain.ErrBracketExists,
			wantTrace: []string{"CountByChampionship"},
		},
		{
			name:     "insert failure is not a domain error",
			athletes: 4,
			setup: func(_ *testing.T, _ *BracketService, d testDeps, _ uuid.UUID) {
				d.repo.InsertErr = errors.New("connection reset")
			},
			wantKind: apperrors.KindInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			championshipID := uuid.New()
			svc, deps := newTestService(t, championshipID, tt.athletes, 1)
			if tt.setup != nil {
				tt.setup(t, svc, deps, championshipID)
			}
			before := len(deps.repo.matches)
			published := len(deps.publisher.Topics)

			_, err := svc.GenerateBracket(context.Background(), organizer, championshipID, tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
			}
			if tt.wantTrace != nil {
				assert.Equal(t, tt.wantTrace, deps.repo.Trace())
			}
			assert.Len(t, deps.repo.matches, before)
			assert.Len(t, deps.publisher.Topics, published)
		})
	}
}

func TestGenerateBracket_Overwrite(t *testing.T) {
	championshipID := uuid.New()
	svc, deps := newTestService(t, championshipID, 4, 9)

	first, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)
	deps.repo.ResetTrace()

	second, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{Overwrite: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"CountByChampionship", "DeleteByChampionship", "InsertMatches"}, deps.repo.Trace())
	assert.Len(t, deps.repo.matches, 3)
	assert.NotEqual(t, first.Rounds[0].Matches[0].ID, second.Rounds[0].Matches[0].ID)
}

func TestGenerateBracket_DeterministicWithSeededSource(t *testing.T) {
	championshipID := uuid.New()
	svcA, depsA := newTestService(t, championshipID, 8, 42)
	svcB, depsB := newTestService(t, championshipID, 8, 42)
	depsB.athletes.IDs = depsA.athletes.IDs
	depsB.athletes.names = depsA.athletes.names

	a, err := svcA.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)
	b, err := svcB.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)

	pairings := func(br *Bracket) [][2]string {
		var out [][2]string
		for _, m := range br.Rounds[0].Matches {
			out = append(out, [2]string{m.Athlete1Name, m.Athlete2Name})
		}
		return out
	}
	if diff := cmp.Diff(pairings(a), pairings(b)); diff != "" {
		t.Errorf("seeded brackets differ (-a +b):\n%s", diff)
	}
}

// playAll starts and resolves every playable match, always picking athlete 1.
func playAll(t *testing.T, svc *BracketService, deps testDeps) {
	t.Helper()
	for guard := 0; guard < 64; guard++ {
		var next *bracketdb.Match
		for _, m := range deps.repo.matches {
			if m.Status == bracketdomain.StatusPending && m.Athlete1ID != nil && m.Athlete2ID != nil {
				next = m
				break
			}
		}
		if next == nil {
			return
		}
		_, err := svc.StartMatch(context.Background(), organizer, next.ID)
		require.NoError(t, err)
		_, err = svc.RecordResult(context.Background(), organizer, next.ID, *next.Athlete1ID)
		require.NoError(t, err)
	}
	t.Fatal("bracket did not finish")
}

func TestRecordResult_PlaysBracketToChampion(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 11} {
		t.Run(fmt.Sprintf("%d athletes", n), func(t *testing.T) {
			championshipID := uuid.New()
			svc, deps := newTestService(t, championshipID, n, uint64(n))

			_, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
			require.NoError(t, err)
			playAll(t, svc, deps)

			b, err := svc.GetBracket(context.Background(), championshipID)
			require.NoError(t, err)
			assert.True(t, b.Complete)
			require.NotNil(t, b.ChampionID)
			assert.NotEmpty(t, b.ChampionName)

			for _, r := range b.Rounds {
				for _, m := range r.Matches {
					assert.Equal(t, bracketdomain.StatusCompleted, m.Status)
				}
			}

			var completed []events.BracketCompletedPayloadV1
			for i, topic := range deps.publisher.Topics {
				if topic == events.BracketCompletedV1 {
					var p events.BracketCompletedPayloadV1
					require.NoError(t, json.Unmarshal(deps.publisher.Messages[i].Payload, &p))
					completed = append(completed, p)
				}
			}
			require.Len(t, completed, 1)
			assert.Equal(t, *b.ChampionID, completed[0].ChampionID)
			assert.Equal(t, championshipID, completed[0].ChampionshipID)
		})
	}
}

func TestMatchTransitions(t *testing.T) {
	championshipID := uuid.New()
	svc, deps := newTestService(t, championshipID, 5, 11)
	_, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)

	first := deps.repo.find(1, 0)
	final := deps.repo.find(3, 0)
	bye := deps.repo.find(1, 2)

	t.Run("result before start", func(t *testing.T) {
		_, err := svc.RecordResult(context.Background(), organizer, first.ID, *first.Athlete1ID)
		assert.ErrorIs(t, err, bracketdomain.ErrInvalidMatchTransition)
	})

	t.Run("start needs two athletes", func(t *testing.T) {
		_, err := svc.StartMatch(context.Background(), organizer, final.ID)
		assert.ErrorIs(t, err, bracketdomain.ErrMatchNotReady)
	})

	t.Run("completed bye cannot restart", func(t *testing.T) {
		_, err := svc.StartMatch(context.Background(), organizer, bye.ID)
		assert.ErrorIs(t, err, bracketdomain.ErrInvalidMatchTransition)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := svc.StartMatch(context.Background(), organizer, uuid.New())
		assert.ErrorIs(t, err, bracketdomain.ErrMatchNotFound)
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := svc.StartMatch(context.Background(), &authdomain.Claims{Subject: "fan"}, first.ID)
		assert.ErrorIs(t, err, bracketdomain.ErrForbidden)
	})

	t.Run("winner must be in match", func(t *testing.T) {
		started, err := svc.StartMatch(context.Background(), organizer, first.ID)
		require.NoError(t, err)
		assert.Equal(t, bracketdomain.StatusInProgress, started.Status)
		assert.NotNil(t, started.StartedAt)

		_, err = svc.RecordResult(context.Background(), organizer, first.ID, uuid.New())
		assert.ErrorIs(t, err, bracketdomain.ErrWinnerNotInMatch)
	})

	t.Run("winner advances to next slot", func(t *testing.T) {
		done, err := svc.RecordResult(context.Background(), organizer, first.ID, *first.Athlete2ID)
		require.NoError(t, err)
		assert.Equal(t, bracketdomain.StatusCompleted, done.Status)

		semi := deps.repo.find(2, 0)
		require.NotNil(t, semi.Athlete1ID)
		assert.Equal(t, *first.Athlete2ID, *semi.Athlete1ID)
		assert.Nil(t, semi.Athlete2ID)
	})

	t.Run("completed match is final", func(t *testing.T) {
		_, err := svc.RecordResult(context.Background(), organizer, first.ID, *first.Athlete1ID)
		assert.ErrorIs(t, err, bracketdomain.ErrInvalidMatchTransition)
	})
}

func TestDecideMatch(t *testing.T) {
	championshipID := uuid.New()
	svc, deps := newTestService(t, championshipID, 2, 5)
	_, err := svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)

	final := deps.repo.find(1, 0)
	_, err = svc.StartMatch(context.Background(), organizer, final.ID)
	require.NoError(t, err)

	deps.performances.Totals = map[uuid.UUID]float64{*final.Athlete1ID: 17.5}
	_, err = svc.DecideMatch(context.Background(), organizer, final.ID)
	assert.ErrorIs(t, err, bracketdomain.ErrUndecidedMatch, "missing performance")

	deps.performances.Totals[*final.Athlete2ID] = 17.5
	_, err = svc.DecideMatch(context.Background(), organizer, final.ID)
	assert.ErrorIs(t, err, bracketdomain.ErrUndecidedMatch, "tie")

	deps.performances.Totals[*final.Athlete2ID] = 18
	decided, err := svc.DecideMatch(context.Background(), organizer, final.ID)
	require.NoError(t, err)
	assert.Equal(t, *final.Athlete2ID, *decided.WinnerID)
	assert.Contains(t, deps.publisher.Topics, events.BracketCompletedV1)
}

func TestResetAndGetBracket(t *testing.T) {
	championshipID := uuid.New()
	svc, deps := newTestService(t, championshipID, 4, 2)

	_, err := svc.GetBracket(context.Background(), championshipID)
	assert.ErrorIs(t, err, bracketdomain.ErrBracketNotFound)

	_, err = svc.GenerateBracket(context.Background(), organizer, championshipID, GenerateRequest{})
	require.NoError(t, err)

	view, err := svc.GetMatch(context.Background(), deps.repo.find(1, 0).ID)
	require.NoError(t, err)
	assert.NotEmpty(t, view.Athlete1Name)
	assert.NotEmpty(t, view.Athlete2Name)

	deps.championships.Info.Completed = true
	assert.ErrorIs(t, svc.ResetBracket(context.Background(), organizer, championshipID), bracketdomain.ErrChampionshipCompleted)
	assert.Len(t, deps.repo.matches, 3)

	deps.championships.Info.Completed = false
	require.NoError(t, svc.ResetBracket(context.Background(), organizer, championshipID))
	assert.Empty(t, deps.repo.matches)
}
