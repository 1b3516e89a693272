package app

import (
	"context"
	"net/http"
	"time"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHandler builds the HTTP API: health probes at the root and every module
// under /api behind the auth middleware chain.
func (a *App) NewHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		authhandlers.CorrelationMiddleware,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readinessHandler(a.DB, a.Championship.Queue))

	r.Route("/api", func(api chi.Router) {
		api.Use(a.Auth.Middlewares()...)
		a.modules.Mount(api)
	})
	return r
}

func (a *App) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              a.Config.HTTP.Address,
		Handler:           a.NewHandler(),
		ReadTimeout:       a.Config.HTTP.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      a.Config.HTTP.WriteTimeout,
	}
}

func newMetricsServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// readinessHandler answers 503 until the database and job queue respond.
func readinessHandler(db Pinger, queue healthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "queue": "ok"}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if queue != nil {
			if err := queue.HealthCheck(ctx); err != nil {
				checks["queue"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		httpx.WriteJSON(w, status, checks)
	}
}
