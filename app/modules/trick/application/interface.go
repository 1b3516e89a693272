package trickservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service is the trick catalog's application API.
type Service interface {
	// ListTricks filters by a case-insensitive name substring and an optional type.
	ListTricks(ctx context.Context, query string, trickType string) ([]trickdb.Trick, error)
	CreateTrick(ctx context.Context, caller *authdomain.Claims, def trickdomain.Definition) (*trickdb.Trick, error)
	GetTrick(ctx context.Context, id uuid.UUID) (*trickdb.Trick, error)
	// SeedDefaults loads the default catalog, skipping names already present.
	SeedDefaults(ctx context.Context) (int, error)
}
