//go:build integration

package bracketintegrationtests

import (
	"testing"

	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	"github.com/Black-And-White-Club/slackline-champs/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlayThrough plays every match, always advancing the first athlete,
// until the final produces a champion.
func TestPlayThrough(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8} {
		deps := SetupTestBracketService(t)
		gen := testutils.NewDataGenerator(int64(n))
		c, _, err := testutils.SeedChampionship(deps.Ctx, deps.Env.DB, gen, organizer.Subject, n)
		require.NoError(t, err)

		bracket, err := deps.Service.GenerateBracket(deps.Ctx, organizer, c.ID, bracketservice.GenerateRequest{})
		require.NoError(t, err)

		played := 0
		for !bracket.Complete {
			progressed := false
			for _, round := range bracket.Rounds {
				for _, m := range round.Matches {
					if m.Status != bracketdomain.StatusPending || m.Athlete1ID == nil || m.Athlete2ID == nil {
						continue
					}
					_, err := deps.Service.StartMatch(deps.Ctx, organizer, m.ID)
					require.NoError(t, err)
					done, err := deps.Service.RecordResult(deps.Ctx, organizer, m.ID, *m.Athlete1ID)
					require.NoError(t, err)
					assert.Equal(t, bracketdomain.StatusCompleted, done.Status)
					progressed = true
					played++
				}
			}
			require.True(t, progressed, "bracket of %d stalled", n)

			bracket, err = deps.Service.GetBracket(deps.Ctx, c.ID)
			require.NoError(t, err)
		}

		assert.Equal(t, n-1, played, "a bracket of %d needs %d decided matches", n, n-1)
		require.NotNil(t, bracket.ChampionID)
		assert.NotEmpty(t, bracket.ChampionName)
	}
}

func TestMatchTransitions(t *testing.T) {
	deps := SetupTestBracketService(t)
	gen := testutils.NewDataGenerator(11)
	c, _, err := testutils.SeedChampionship(deps.Ctx, deps.Env.DB, gen, organizer.Subject, 2)
	require.NoError(t, err)

	bracket, err := deps.Service.GenerateBracket(deps.Ctx, organizer, c.ID, bracketservice.GenerateRequest{})
	require.NoError(t, err)
	final := bracket.Rounds[0].Matches[0]

	_, err = deps.Service.RecordResult(deps.Ctx, organizer, final.ID, *final.Athlete1ID)
	require.ErrorIs(t, err, bracketdomain.ErrInvalidMatchTransition)

	_, err = deps.Service.StartMatch(deps.Ctx, organizer, final.ID)
	require.NoError(t, err)
	_, err = deps.Service.StartMatch(deps.Ctx, organizer, final.ID)
	require.ErrorIs(t, err, bracketdomain.ErrInvalidMatchTransition)

	_, err = deps.Service.DecideMatch(deps.Ctx, organizer, final.ID)
	require.ErrorIs(t, err, bracketdomain.ErrUndecidedMatch)

	_, err = deps.Service.RecordResult(deps.Ctx, organizer, final.ID, *final.Athlete2ID)
	require.NoError(t, err)

	require.NoError(t, deps.Service.ResetBracket(deps.Ctx, organizer, c.ID))
	_, err = deps.Service.GetBracket(deps.Ctx, c.ID)
	require.ErrorIs(t, err, bracketdomain.ErrBracketNotFound)
}
