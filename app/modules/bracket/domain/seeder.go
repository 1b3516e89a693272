// Package bracketdomain holds the single-elimination bracket rules: seeding,
// match linking and status transitions.
package bracketdomain

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Layout selects how round 1 is shaped.
type Layout string

const (
	// LayoutCompact pairs athletes consecutively; round 1 has ceil(N/2)
	// matches and every later round halves rounding up.
	LayoutCompact Layout = "compact"
	// LayoutBalanced pads round 1 to a power of two, spreading the byes.
	LayoutBalanced Layout = "balanced"
)

// ParseLayout parses a layout name. An empty string yields def.
func ParseLayout(s string, def Layout) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return def, nil
	case LayoutCompact:
		return LayoutCompact, nil
	case LayoutBalanced:
		return LayoutBalanced, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLayout, s)
	}
}

// Slot addresses a match within a bracket.
type Slot struct {
	Round    int
	Position int
}

// PlannedMatch is a match produced by the seeder, before persistence.
type PlannedMatch struct {
	Round    int
	Position int
	Athlete1 *uuid.UUID
	Athlete2 *uuid.UUID
	Winner   *uuid.UUID
	Status   MatchStatus
	// Next is the match the winner advances to; nil for the final.
	Next *Slot
	// NextSlot is 0 for Athlete1 and 1 for Athlete2 of Next.
	NextSlot int
	// Feeders is the number of earlier matches whose winners land here.
	Feeders int
}

// IsBye reports whether the match has exactly one athlete.
func (m PlannedMatch) IsBye() bool {
	return (m.Athlete1 == nil) != (m.Athlete2 == nil)
}

// NumRounds returns ceil(log2(n)) for n >= 2.
func NumRounds(n int) int {
	if n < 2 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Seeder turns a set of athletes into a single-elimination bracket.
type Seeder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeder returns a Seeder drawing from rng. A nil rng uses the
// runtime-seeded global source.
func NewSeeder(rng *rand.Rand) *Seeder {
	return &Seeder{rng: rng}
}

// Seed shuffles athletes and lays out every round. The input slice is not
// modified. Matches are ordered by round, then position.
func (s *Seeder) Seed(athletes []uuid.UUID, layout Layout) ([]PlannedMatch, error) {
	n := len(athletes)
	if n < 2 {
		return nil, ErrInsufficientAthletes
	}

	order := make([]uuid.UUID, n)
	copy(order, athletes)
	s.shuffle(order)

	var round1 []PlannedMatch
	switch layout {
	case LayoutCompact, "":
		round1 = compactFirstRound(order)
	case LayoutBalanced:
		round1 = balancedFirstRound(order)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}

	numRounds := NumRounds(n)
	matches := make([]PlannedMatch, 0, 2*len(round1))
	matches = append(matches, round1...)

	prev := len(round1)
	for r := 2; r <= numRounds; r++ {
		count := (prev + 1) / 2
		for p := 0; p < count; p++ {
			matches = append(matches, PlannedMatch{
				Round:    r,
				Position: p,
				Status:   StatusPending,
				Feeders:  min(2, prev-2*p),
			})
		}
		prev = count
	}

	for i := range matches {
		if matches[i].Round < numRounds {
			matches[i].Next = &Slot{Round: matches[i].Round + 1, Position: matches[i].Position / 2}
			matches[i].NextSlot = matches[i].Position % 2
		}
	}
	return matches, nil
}

// shuffle is a uniform Fisher-Yates permutation.
func (s *Seeder) shuffle(order []uuid.UUID) {
	swap := func(i, j int) { order[i], order[j] = order[j], order[i] }
	if s.rng == nil {
		rand.Shuffle(len(order), swap)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(order), swap)
}

func compactFirstRound(order []uuid.UUID) []PlannedMatch {
	count := (len(order) + 1) / 2
	out := make([]PlannedMatch, 0, count)
	for p := 0; p < count; p++ {
		a1 := order[2*p]
		if 2*p+1 < len(order) {
			a2 := order[2*p+1]
			out = append(out, PlannedMatch{Round: 1, Position: p, Athlete1: &a1, Athlete2: &a2, Status: StatusPending})
			continue
		}
		out = append(out, byeMatch(p, a1))
	}
	return out
}

// balancedFirstRound fills 2^(k-1) matches, giving the 2^k-N byes to even
// positions first and then odd ones so byes do not meet in round 2 while
// that can be avoided.
func balancedFirstRound(order []uuid.UUID) []PlannedMatch {
	n := len(order)
	size := 1 << NumRounds(n)
	count := size / 2
	byes := size - n

	isBye := make([]bool, count)
	for p := 0; p < count && byes > 0; p += 2 {
		isBye[p] = true
		byes--
	}
	for p := 1; p < count && byes > 0; p += 2 {
		isBye[p] = true
		byes--
	}

	out := make([]PlannedMatch, 0, count)
	next := 0
	for p := 0; p < count; p++ {
		a1 := order[next]
		next++
		if isBye[p] {
			out = append(out, byeMatch(p, a1))
			continue
		}
		a2 := order[next]
		next++
		out = append(out, PlannedMatch{Round: 1, Position: p, Athlete1: &a1, Athlete2: &a2, Status: StatusPending})
	}
	return out
}

func byeMatch(position int, athlete uuid.UUID) PlannedMatch {
	winner := athlete
	return PlannedMatch{
		Round:    1,
		Position: position,
		Athlete1: &athlete,
		Winner:   &winner,
		Status:   StatusCompleted,
	}
}
