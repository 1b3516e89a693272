// Package trickdomain holds the scoring trick catalog rules.
package trickdomain

import (
	"strings"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
)

// Type groups tricks by what they reward.
type Type string

const (
	TypeTechnique Type = "technique"
	TypeHeight    Type = "height"
	TypeSpin      Type = "spin"
	TypeCombo     Type = "combo"
)

// IsValid reports whether t is a known trick type.
func (t Type) IsValid() bool {
	switch t {
	case TypeTechnique, TypeHeight, TypeSpin, TypeCombo:
		return true
	}
	return false
}

const MinNameLength = 2

var (
	ErrTrickNotFound     = apperrors.NotFound("trick not found")
	ErrInvalidName       = apperrors.Validation("trick name must be at least 2 characters")
	ErrInvalidType       = apperrors.Validation("trick type must be technique, height, spin or combo")
	ErrInvalidBasePoints = apperrors.Validation("base points must not be negative")
	ErrTrickExists       = apperrors.Conflict("a trick with this name already exists")
	ErrForbidden         = apperrors.Forbidden("only admins can change the trick catalog")
)

// Definition is a trick as submitted for the catalog.
type Definition struct {
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	BasePoints  int    `json:"base_points"`
	Description string `json:"description"`
}

// Normalize trims the definition and validates it.
func (d Definition) Normalize() (Definition, error) {
	out := Definition{
		Name:        strings.TrimSpace(d.Name),
		Type:        Type(strings.ToLower(strings.TrimSpace(string(d.Type)))),
		BasePoints:  d.BasePoints,
		Description: strings.TrimSpace(d.Description),
	}
	if len([]rune(out.Name)) < MinNameLength {
		return Definition{}, ErrInvalidName
	}
	if !out.Type.IsValid() {
		return Definition{}, ErrInvalidType
	}
	if out.BasePoints < 0 {
		return Definition{}, ErrInvalidBasePoints
	}
	return out, nil
}

// DefaultCatalog is loaded by the seed command.
var DefaultCatalog = []Definition{
	{Name: "Backflip", Type: TypeHeight, BasePoints: 8, Description: "Full backward flip."},
	{Name: "Buddha", Type: TypeTechnique, BasePoints: 5, Description: "Seated balance on the line."},
	{Name: "Chest Bounce", Type: TypeTechnique, BasePoints: 4, Description: "Bounce off the line with the chest and return to standing."},
	{Name: "360 Spin", Type: TypeSpin, BasePoints: 6, Description: "One full rotation."},
	{Name: "Buttbounce", Type: TypeTechnique, BasePoints: 3, Description: "Bounce seated and return to standing."},
	{Name: "Frontflip", Type: TypeHeight, BasePoints: 8, Description: "Full forward flip."},
	{Name: "Double Backflip", Type: TypeCombo, BasePoints: 12, Description: "Two consecutive backflips."},
	{Name: "720 Spin", Type: TypeSpin, BasePoints: 9, Description: "Two consecutive full rotations."},
}
