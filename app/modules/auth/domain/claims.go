package authdomain

import (
	"context"
	"time"
)

// Claims represents the verified identity of an API caller.
type Claims struct {
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// CanManage reports whether the caller may modify a resource owned by owner.
func (c *Claims) CanManage(owner string) bool {
	if c == nil {
		return false
	}
	return c.Role == RoleAdmin || (c.Subject != "" && c.Subject == owner)
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok && claims != nil
}
