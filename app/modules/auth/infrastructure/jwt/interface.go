package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed token for the given claims. It is used by
	// the development CLI and tests; production tokens come from the identity provider.
	GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
