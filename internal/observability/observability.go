// Package observability builds the logger, tracer and metrics registry shared
// by every module.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/slackline-champs/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config configures Init.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Observability bundles the ambient telemetry handles.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// Init constructs the logger, tracer and Prometheus registry.
func Init(cfg Config) Observability {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.Environment == "development" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: registry,
	}
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() Observability {
	return Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("noop"),
		Registry: prometheus.NewRegistry(),
	}
}

// ModuleMetrics returns the operation metrics for module, falling back to
// no-op metrics if registration fails.
func (o Observability) ModuleMetrics(module string) metrics.OperationMetrics {
	if o.Registry == nil {
		return metrics.NewNoop()
	}
	m, err := metrics.NewPrometheusMetrics(o.Registry, module)
	if err != nil {
		if o.Logger != nil {
			o.Logger.Warn("Failed to register module metrics", slog.String("module", module), slog.String("error", err.Error()))
		}
		return metrics.NewNoop()
	}
	return m
}

// ParseLevel maps a textual level to a slog.Level. Unknown values yield Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
