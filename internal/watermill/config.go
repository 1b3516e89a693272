// Package watermillutil builds the Watermill router every module registers
// its event handlers on.
package watermillutil

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	wm "github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Config tunes the router middleware.
type Config struct {
	// MaxRetries is how often a failing handler is retried before the
	// message is nacked for redelivery.
	MaxRetries      int
	InitialInterval time.Duration
	CloseTimeout    time.Duration
	// Registry, when set, receives the router's handler metrics.
	Registry prometheus.Registerer
}

// DefaultConfig returns the settings used by the service.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		CloseTimeout:    10 * time.Second,
	}
}

// NewRouter creates a router with recovery, retry and correlation ID
// propagation.
func NewRouter(config Config, logger *slog.Logger) (*wm.Router, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	router, err := wm.NewRouter(wm.RouterConfig{CloseTimeout: config.CloseTimeout}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      config.MaxRetries,
			InitialInterval: config.InitialInterval,
			Logger:          wmLogger,
		}.Middleware,
		middleware.Recoverer,
	)

	if config.Registry != nil {
		metricsBuilder := metrics.NewPrometheusMetricsBuilder(config.Registry, "slackline", "events")
		metricsBuilder.AddPrometheusRouterMetrics(router)
	}

	return router, nil
}
