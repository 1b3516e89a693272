package championshipdomain

import (
	"fmt"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
)

// Status is the lifecycle state of a championship.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

var (
	ErrChampionshipNotFound    = apperrors.NotFound("championship not found")
	ErrInvalidName             = apperrors.Validation("name must have at least 3 characters")
	ErrInvalidStatus           = apperrors.Validation("unknown championship status")
	ErrInvalidStatusTransition = apperrors.Conflict("invalid championship status transition")
	ErrForbidden               = apperrors.Forbidden("only the organizer can modify this championship")
)

// MinNameLength applies to championship and athlete names.
const MinNameLength = 3

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a championship may move from s to to.
func (s Status) CanTransition(to Status) bool {
	return (s == StatusDraft && to == StatusActive) || (s == StatusActive && to == StatusCompleted)
}

// ValidateTransition returns ErrInvalidStatusTransition when from cannot move to to.
func ValidateTransition(from, to Status) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}
	return nil
}
