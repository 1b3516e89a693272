//go:build integration

package performanceintegrationtests

import (
	"bytes"
	"testing"

	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	performanceservice "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/application"
	performancedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/domain"
	"github.com/Black-And-White-Club/slackline-champs/integration_tests/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoredFinal runs a two-athlete final decided by performance totals.
func TestScoredFinal(t *testing.T) {
	deps := SetupTestPerformanceService(t)
	gen := testutils.NewDataGenerator(21)

	c, _, err := testutils.SeedChampionship(deps.Ctx, deps.Env.DB, gen, organizer.Subject, 2)
	require.NoError(t, err)
	trick, err := testutils.SeedTrick(deps.Ctx, deps.Env.DB, gen)
	require.NoError(t, err)

	bracket, err := deps.Brackets.GenerateBracket(deps.Ctx, organizer, c.ID, bracketservice.GenerateRequest{})
	require.NoError(t, err)
	final := bracket.Rounds[0].Matches[0]
	a1, a2 := *final.Athlete1ID, *final.Athlete2ID

	submit := func(athlete uuid.UUID, scores ...float64) error {
		req := performanceservice.SubmitRequest{AthleteID: athlete}
		for _, s := range scores {
			req.Tricks = append(req.Tricks, performancedomain.ScoredTrick{TrickID: trick.ID, ExecutionScore: s})
		}
		_, err := deps.Performances.SubmitPerformance(deps.Ctx, organizer, final.ID, req)
		return err
	}

	require.ErrorIs(t, submit(a1, 5), performancedomain.ErrMatchNotInProgress)

	_, err = deps.Brackets.StartMatch(deps.Ctx, organizer, final.ID)
	require.NoError(t, err)

	require.NoError(t, submit(a1, 9.5, 8.25))
	require.NoError(t, submit(a2, 7, 6))
	// A resubmission replaces the earlier run.
	require.NoError(t, submit(a2, 9, 9.5))

	require.ErrorIs(t, submit(uuid.New(), 5), performancedomain.ErrAthleteNotInMatch)
	_, err = deps.Performances.SubmitPerformance(deps.Ctx, organizer, final.ID, performanceservice.SubmitRequest{
		AthleteID: a1,
		Tricks:    []performancedomain.ScoredTrick{{TrickID: uuid.New(), ExecutionScore: 5}},
	})
	require.ErrorIs(t, err, performancedomain.ErrUnknownTrick)

	list, err := deps.Performances.ListPerformances(deps.Ctx, final.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a2, list[0].AthleteID)
	assert.InDelta(t, 18.5, list[0].TotalScore, 1e-9)
	assert.InDelta(t, 17.75, list[1].TotalScore, 1e-9)

	decided, err := deps.Brackets.DecideMatch(deps.Ctx, organizer, final.ID)
	require.NoError(t, err)
	require.NotNil(t, decided.WinnerID)
	assert.Equal(t, a2, *decided.WinnerID)
	assert.Equal(t, bracketdomain.StatusCompleted, decided.Status)

	require.ErrorIs(t, submit(a1, 10), performancedomain.ErrMatchNotInProgress)

	png, err := deps.Performances.ScoreChart(deps.Ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestSubmitPerformanceForbidden(t *testing.T) {
	deps := SetupTestPerformanceService(t)
	gen := testutils.NewDataGenerator(5)

	c, _, err := testutils.SeedChampionship(deps.Ctx, deps.Env.DB, gen, organizer.Subject, 2)
	require.NoError(t, err)
	trick, err := testutils.SeedTrick(deps.Ctx, deps.Env.DB, gen)
	require.NoError(t, err)
	bracket, err := deps.Brackets.GenerateBracket(deps.Ctx, organizer, c.ID, bracketservice.GenerateRequest{})
	require.NoError(t, err)
	final := bracket.Rounds[0].Matches[0]
	_, err = deps.Brackets.StartMatch(deps.Ctx, organizer, final.ID)
	require.NoError(t, err)

	stranger := *organizer
	stranger.Subject = "spectator"
	_, err = deps.Performances.SubmitPerformance(deps.Ctx, &stranger, final.ID, performanceservice.SubmitRequest{
		AthleteID: *final.Athlete1ID,
		Tricks:    []performancedomain.ScoredTrick{{TrickID: trick.ID, ExecutionScore: gen.ExecutionScore()}},
	})
	require.ErrorIs(t, err, performancedomain.ErrForbidden)

	_, err = deps.Performances.ListPerformances(deps.Ctx, uuid.New())
	require.ErrorIs(t, err, performancedomain.ErrMatchNotFound)
}
