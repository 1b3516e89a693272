package athletedomain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
)

// Category is the discipline an athlete competes in.
type Category string

const (
	CategoryTrickline Category = "trickline"
	CategorySpeedline Category = "speedline"
)

// Level is an athlete's competition level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelAmateur      Level = "amateur"
	LevelProfessional Level = "professional"
	LevelFemale       Level = "female"
)

const (
	DefaultCategory = CategoryTrickline
	DefaultLevel    = LevelAmateur
	MinNameLength   = 3
)

var (
	ErrAthleteNotFound      = apperrors.NotFound("athlete not found")
	ErrChampionshipNotFound = apperrors.NotFound("championship not found")
	ErrInvalidName          = apperrors.Validation("athlete name must have at least 3 characters")
	ErrInvalidCategory      = apperrors.Validation("category must be trickline or speedline")
	ErrInvalidLevel         = apperrors.Validation("level must be beginner, amateur, professional or female")
	ErrInvalidAvatarURL     = apperrors.Validation("avatar_url must be an absolute http(s) URL")
	ErrRegistrationClosed   = apperrors.Conflict("registration is closed for this championship")
	ErrForbidden            = apperrors.Forbidden("only the organizer can manage athletes of this championship")
	ErrEmptyRoster          = apperrors.Validation("roster contains no athletes")
	ErrUnsupportedRoster    = apperrors.Validation("roster must be a .csv or .xlsx file")
)

func (c Category) IsValid() bool {
	return c == CategoryTrickline || c == CategorySpeedline
}

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelAmateur, LevelProfessional, LevelFemale:
		return true
	}
	return false
}

// Registration is a validated athlete registration.
type Registration struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Level     Level    `json:"level"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
}

// Normalize trims every field, fills defaults and validates the result.
func (r Registration) Normalize() (Registration, error) {
	out := Registration{
		Name:      strings.TrimSpace(r.Name),
		Category:  Category(strings.ToLower(strings.TrimSpace(string(r.Category)))),
		Level:     Level(strings.ToLower(strings.TrimSpace(string(r.Level)))),
		Bio:       strings.TrimSpace(r.Bio),
		AvatarURL: strings.TrimSpace(r.AvatarURL),
	}
	if out.Category == "" {
		out.Category = DefaultCategory
	}
	if out.Level == "" {
		out.Level = DefaultLevel
	}

	if len([]rune(out.Name)) < MinNameLength {
		return Registration{}, ErrInvalidName
	}
	if !out.Category.IsValid() {
		return Registration{}, fmt.Errorf("%w: %q", ErrInvalidCategory, out.Category)
	}
	if !out.Level.IsValid() {
		return Registration{}, fmt.Errorf("%w: %q", ErrInvalidLevel, out.Level)
	}
	if out.AvatarURL != "" {
		u, err := url.Parse(out.AvatarURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Registration{}, ErrInvalidAvatarURL
		}
	}
	return out, nil
}

// RowError reports an invalid roster row.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }
