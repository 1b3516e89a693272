package auth

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/slackline-champs/config"
	"golang.org/x/time/rate"
)

// Module verifies API callers. Identities are issued by the external identity
// provider; this module only checks their tokens.
type Module struct {
	Provider authjwt.Provider
	limiter  *authhandlers.IPRateLimiter
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthModule creates the auth module from configuration.
func NewAuthModule(cfg *config.Config, logger *slog.Logger) *Module {
	return &Module{
		Provider: authjwt.NewProvider(cfg.JWT.Secret, authjwt.Options{
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
		}),
		limiter: authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		cfg:     cfg,
		logger:  logger,
	}
}

// Middlewares returns the middleware chain applied to every API route, in order.
func (m *Module) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		authhandlers.CORSMiddleware(m.cfg.HTTP.AllowedOrigins),
		authhandlers.RateLimitMiddleware(m.limiter),
		authhandlers.BearerAuthMiddleware(m.Provider, m.logger),
	}
}
