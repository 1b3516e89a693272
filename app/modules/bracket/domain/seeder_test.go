package bracketdomain

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func athletes(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func countByRound(matches []PlannedMatch) map[int]int {
	out := map[int]int{}
	for _, m := range matches {
		out[m.Round]++
	}
	return out
}

func countByes(matches []PlannedMatch) int {
	byes := 0
	for _, m := range matches {
		if m.Round == 1 && m.IsBye() {
			byes++
		}
	}
	return byes
}

// shape is the athlete-independent view of a planned match.
type shape struct {
	Round, Position int
	Athletes        int
	Status          MatchStatus
	Next            *Slot
	NextSlot        int
	Feeders         int
}

func shapes(matches []PlannedMatch) []shape {
	out := make([]shape, len(matches))
	for i, m := range matches {
		n := 0
		if m.Athlete1 != nil {
			n++
		}
		if m.Athlete2 != nil {
			n++
		}
		out[i] = shape{m.Round, m.Position, n, m.Status, m.Next, m.NextSlot, m.Feeders}
	}
	return out
}

func TestNumRounds(t *testing.T) {
	tests := map[int]int{0: 0, 1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 16: 4, 17: 5, 33: 6}
	for n, want := range tests {
		assert.Equal(t, want, NumRounds(n), "n=%d", n)
	}
}

func TestSeed_RejectsTooFewAthletes(t *testing.T) {
	s := NewSeeder(nil)
	for _, n := range []int{0, 1} {
		matches, err := s.Seed(athletes(n), LayoutCompact)
		assert.ErrorIs(t, err, ErrInsufficientAthletes)
		assert.Nil(t, matches)
	}
}

func TestSeed_UnknownLayout(t *testing.T) {
	_, err := NewSeeder(nil).Seed(athletes(4), Layout("swiss"))
	assert.True(t, errors.Is(err, ErrUnknownLayout))
}

func TestSeed_FiveAthletesCompact(t *testing.T) {
	s := NewSeeder(rand.New(rand.NewPCG(1, 2)))
	matches, err := s.Seed(athletes(5), LayoutCompact)
	require.NoError(t, err)

	want := []shape{
		{Round: 1, Position: 0, Athletes: 2, Status: StatusPending, Next: &Slot{2, 0}, NextSlot: 0},
		{Round: 1, Position: 1, Athletes: 2, Status: StatusPending, Next: &Slot{2, 0}, NextSlot: 1},
		{Round: 1, Position: 2, Athletes: 1, Status: StatusCompleted, Next: &Slot{2, 1}, NextSlot: 0},
		{Round: 2, Position: 0, Athletes: 0, Status: StatusPending, Next: &Slot{3, 0}, NextSlot: 0, Feeders: 2},
		{Round: 2, Position: 1, Athletes: 0, Status: StatusPending, Next: &Slot{3, 0}, NextSlot: 1, Feeders: 1},
		{Round: 3, Position: 0, Athletes: 0, Status: StatusPending, Feeders: 2},
	}
	if diff := cmp.Diff(want, shapes(matches)); diff != "" {
		t.Errorf("bracket shape mismatch (-want +got):\n%s", diff)
	}

	bye := matches[2]
	require.NotNil(t, bye.Winner)
	assert.Equal(t, *bye.Athlete1, *bye.Winner)
	assert.Nil(t, bye.Athlete2)
}

func TestSeed_FourAthletes(t *testing.T) {
	for _, layout := range []Layout{LayoutCompact, LayoutBalanced} {
		t.Run(string(layout), func(t *testing.T) {
			matches, err := NewSeeder(nil).Seed(athletes(4), layout)
			require.NoError(t, err)

			assert.Len(t, matches, 3)
			assert.Equal(t, map[int]int{1: 2, 2: 1}, countByRound(matches))
			assert.Zero(t, countByes(matches))
			for _, m := range matches[:2] {
				assert.NotNil(t, m.Athlete1)
				assert.NotNil(t, m.Athlete2)
				assert.Equal(t, StatusPending, m.Status)
			}
			assert.Nil(t, matches[2].Athlete1)
			assert.Nil(t, matches[2].Athlete2)
		})
	}
}

func TestSeed_Properties(t *testing.T) {
	s := NewSeeder(rand.New(rand.NewPCG(42, 7)))

	for n := 2; n <= 33; n++ {
		for _, layout := range []Layout{LayoutCompact, LayoutBalanced} {
			ids := athletes(n)
			matches, err := s.Seed(ids, layout)
			require.NoError(t, err, "n=%d layout=%s", n, layout)

			numRounds := NumRounds(n)
			byRound := countByRound(matches)
			assert.Len(t, byRound, numRounds, "n=%d layout=%s", n, layout)
			assert.Equal(t, 1, byRound[numRounds], "single final, n=%d layout=%s", n, layout)

			switch layout {
			case LayoutCompact:
				prev := (n + 1) / 2
				assert.Equal(t, prev, byRound[1])
				for r := 2; r <= numRounds; r++ {
					prev = (prev + 1) / 2
					assert.Equal(t, prev, byRound[r], "n=%d round=%d", n, r)
				}
				assert.Equal(t, n%2, countByes(matches), "n=%d", n)
			case LayoutBalanced:
				size := 1 << numRounds
				assert.Len(t, matches, size-1, "n=%d", n)
				assert.Equal(t, size-n, countByes(matches), "n=%d", n)
			}

			seen := map[uuid.UUID]int{}
			for _, m := range matches {
				if m.Round == 1 {
					assert.NotNil(t, m.Athlete1)
					if m.Athlete1 != nil {
						seen[*m.Athlete1]++
					}
					if m.Athlete2 != nil {
						seen[*m.Athlete2]++
					}
					if m.IsBye() {
						assert.Equal(t, StatusCompleted, m.Status)
						require.NotNil(t, m.Winner)
						assert.Equal(t, *m.Athlete1, *m.Winner)
					} else {
						assert.Equal(t, StatusPending, m.Status)
						assert.Nil(t, m.Winner)
					}
					continue
				}
				assert.Nil(t, m.Athlete1)
				assert.Nil(t, m.Athlete2)
				assert.Nil(t, m.Winner)
				assert.Equal(t, StatusPending, m.Status)
			}
			assert.Len(t, seen, n, "every athlete seeded once, n=%d", n)
			for id, c := range seen {
				assert.Equal(t, 1, c, "athlete %s seeded %d times", id, c)
			}

			assertLinks(t, matches)
		}
	}
}

// assertLinks checks that every non-final match points at an existing slot
// and that feeder counts match the incoming links.
func assertLinks(t *testing.T, matches []PlannedMatch) {
	t.Helper()
	index := map[Slot]PlannedMatch{}
	for _, m := range matches {
		index[Slot{m.Round, m.Position}] = m
	}
	incoming := map[Slot]map[int]bool{}
	for _, m := range matches {
		if m.Next == nil {
			continue
		}
		_, ok := index[*m.Next]
		require.True(t, ok, "match %d/%d links to missing %v", m.Round, m.Position, *m.Next)
		if incoming[*m.Next] == nil {
			incoming[*m.Next] = map[int]bool{}
		}
		assert.False(t, incoming[*m.Next][m.NextSlot], "slot %d of %v fed twice", m.NextSlot, *m.Next)
		incoming[*m.Next][m.NextSlot] = true
	}
	finals := 0
	for _, m := range matches {
		if m.Next == nil {
			finals++
		}
		assert.Equal(t, m.Feeders, len(incoming[Slot{m.Round, m.Position}]))
	}
	assert.Equal(t, 1, finals)
}

func TestSeed_BalancedByesSpread(t *testing.T) {
	// 5 athletes: 8 slots, 3 byes over 4 round-1 matches at positions 0, 2 and 1.
	matches, err := NewSeeder(nil).Seed(athletes(5), LayoutBalanced)
	require.NoError(t, err)

	var byePositions []int
	for _, m := range matches {
		if m.Round == 1 && m.IsBye() {
			byePositions = append(byePositions, m.Position)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, byePositions)

	// 6 athletes: 2 byes at positions 0 and 2, so they meet no earlier than round 3.
	matches, err = NewSeeder(nil).Seed(athletes(6), LayoutBalanced)
	require.NoError(t, err)
	byePositions = nil
	for _, m := range matches {
		if m.Round == 1 && m.IsBye() {
			byePositions = append(byePositions, m.Position)
		}
	}
	assert.Equal(t, []int{0, 2}, byePositions)
}

func TestSeed_DoesNotMutateInput(t *testing.T) {
	ids := athletes(8)
	before := append([]uuid.UUID(nil), ids...)
	_, err := NewSeeder(nil).Seed(ids, LayoutCompact)
	require.NoError(t, err)
	assert.Equal(t, before, ids)
}

func TestSeed_DeterministicWithSeededSource(t *testing.T) {
	ids := athletes(9)
	a, err := NewSeeder(rand.New(rand.NewPCG(5, 5))).Seed(ids, LayoutCompact)
	require.NoError(t, err)
	b, err := NewSeeder(rand.New(rand.NewPCG(5, 5))).Seed(ids, LayoutCompact)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeed_ShuffleIsUniform(t *testing.T) {
	// With 3 athletes the bye goes to whoever lands last; each should get it
	// about a third of the time.
	ids := athletes(3)
	s := NewSeeder(rand.New(rand.NewPCG(99, 1)))

	const trials = 6000
	byes := map[uuid.UUID]int{}
	for i := 0; i < trials; i++ {
		matches, err := s.Seed(ids, LayoutCompact)
		require.NoError(t, err)
		for _, m := range matches {
			if m.IsBye() {
				byes[*m.Winner]++
			}
		}
	}

	for _, id := range ids {
		share := float64(byes[id]) / trials
		assert.InDelta(t, 1.0/3, share, 0.03, "bye share for %s", id)
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("", LayoutBalanced)
	require.NoError(t, err)
	assert.Equal(t, LayoutBalanced, l)

	l, err = ParseLayout(" Compact ", LayoutBalanced)
	require.NoError(t, err)
	assert.Equal(t, LayoutCompact, l)

	_, err = ParseLayout("round-robin", LayoutCompact)
	assert.ErrorIs(t, err, ErrUnknownLayout)
}
