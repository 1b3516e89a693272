// Package performancedomain holds the scoring rules for athlete performances.
package performancedomain

import (
	"fmt"
	"math"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/google/uuid"
)

// MaxExecutionScore is the highest score a judge can give one trick.
const MaxExecutionScore = 10.0

var (
	ErrNoTricks           = apperrors.Validation("a performance needs at least one trick")
	ErrInvalidScore       = apperrors.Validation("execution score must be between 0 and 10")
	ErrUnknownTrick       = apperrors.Validation("performance references an unknown trick")
	ErrAthleteRequired    = apperrors.Validation("athlete_id is required")
	ErrAthleteNotInMatch  = apperrors.Validation("athlete is not part of this match")
	ErrMatchNotFound      = apperrors.NotFound("match not found")
	ErrMatchNotInProgress = apperrors.Conflict("performances can only be recorded while the match is in progress")
	ErrForbidden          = apperrors.Forbidden("only the championship organizer can record performances")
)

// ScoredTrick is one trick of a performance with its execution score.
type ScoredTrick struct {
	TrickID        uuid.UUID `json:"trick_id"`
	ExecutionScore float64   `json:"execution_score"`
}

// Total validates tricks and returns the sum of their execution scores.
func Total(tricks []ScoredTrick) (float64, error) {
	if len(tricks) == 0 {
		return 0, ErrNoTricks
	}
	total := 0.0
	for i, t := range tricks {
		if t.TrickID == uuid.Nil {
			return 0, fmt.Errorf("%w: trick %d has no id", ErrUnknownTrick, i+1)
		}
		if math.IsNaN(t.ExecutionScore) || t.ExecutionScore < 0 || t.ExecutionScore > MaxExecutionScore {
			return 0, fmt.Errorf("%w: trick %d scored %v", ErrInvalidScore, i+1, t.ExecutionScore)
		}
		total += t.ExecutionScore
	}
	return math.Round(total*100) / 100, nil
}

// TrickIDs returns the distinct trick IDs in order of first appearance.
func TrickIDs(tricks []ScoredTrick) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(tricks))
	out := make([]uuid.UUID, 0, len(tricks))
	for _, t := range tricks {
		if _, ok := seen[t.TrickID]; ok {
			continue
		}
		seen[t.TrickID] = struct{}{}
		out = append(out, t.TrickID)
	}
	return out
}
