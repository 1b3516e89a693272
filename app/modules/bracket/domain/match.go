package bracketdomain

import (
	"fmt"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
)

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusPending    MatchStatus = "pending"
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
)

// IsValid reports whether s is a known status.
func (s MatchStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

var (
	ErrInsufficientAthletes   = apperrors.Validation("at least 2 athletes are required to generate a bracket")
	ErrUnknownLayout          = apperrors.Validation("unknown bracket layout")
	ErrInvalidMatchTransition = apperrors.Conflict("invalid match status transition")
	ErrMatchNotReady          = apperrors.Conflict("match needs two athletes before it can start")
	ErrWinnerNotInMatch       = apperrors.Validation("winner must be one of the match athletes")
	ErrBracketExists          = apperrors.Conflict("bracket already exists for this championship")
	ErrBracketNotFound        = apperrors.NotFound("bracket not found")
	ErrMatchNotFound          = apperrors.NotFound("match not found")
	ErrChampionshipNotFound   = apperrors.NotFound("championship not found")
	ErrChampionshipCompleted  = apperrors.Conflict("championship is already completed")
	ErrUndecidedMatch         = apperrors.Conflict("match cannot be decided from performances")
	ErrForbidden              = apperrors.Forbidden("only the championship organizer can change its bracket")
)

// ValidateTransition checks a status change requested by an organizer. Byes
// are completed by advancement and never go through this check.
func ValidateTransition(from, to MatchStatus) error {
	switch {
	case from == StatusPending && to == StatusInProgress:
		return nil
	case from == StatusInProgress && to == StatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidMatchTransition, from, to)
	}
}

// RoundName returns the display name of round out of numRounds.
func RoundName(round, numRounds int) string {
	switch numRounds - round {
	case 0:
		return "Final"
	case 1:
		return "Semifinal"
	case 2:
		return "Quarterfinal"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}
