// Package metrics records per-operation service metrics.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics is implemented by every service's metrics recorder.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// PrometheusMetrics records operation metrics into a Prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ OperationMetrics = (*PrometheusMetrics)(nil)

// NewPrometheusMetrics registers the operation collectors for module on reg.
// Registering the same module twice returns the already registered collectors.
func NewPrometheusMetrics(reg prometheus.Registerer, module string) (*PrometheusMetrics, error) {
	labels := []string{"operation", "service"}
	constLabels := prometheus.Labels{"module": module}

	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "slackline",
			Name:        "operation_attempts_total",
			Help:        "Number of service operations attempted.",
			ConstLabels: constLabels,
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "slackline",
			Name:        "operation_successes_total",
			Help:        "Number of service operations that completed without an infrastructure error.",
			ConstLabels: constLabels,
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "slackline",
			Name:        "operation_failures_total",
			Help:        "Number of service operations that failed with an infrastructure error or panic.",
			ConstLabels: constLabels,
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "slackline",
			Name:        "operation_duration_seconds",
			Help:        "Duration of service operations.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, labels),
	}

	var err error
	if m.attempts, err = register(reg, m.attempts); err != nil {
		return nil, err
	}
	if m.successes, err = register(reg, m.successes); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

// NewNoop returns an OperationMetrics that records nothing.
func NewNoop() OperationMetrics { return NoOpMetrics{} }

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
