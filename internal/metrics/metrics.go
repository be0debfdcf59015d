// Package metrics exposes Prometheus instrumentation for p-adic evaluations.
// Each run owns its own registry; the application writes it in node-exporter
// textfile format when --metrics-file is set.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/agbru/padicalc/internal/padic"
)

const namespace = "padicalc"

// Metrics holds the collectors of one run.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	precision  prometheus.Histogram
	duration   *prometheus.HistogramVec
}

// New creates a registry with the padicalc collectors and the Go runtime
// collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of completed p-adic operations by operation name.",
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Number of failed p-adic operations by error kind.",
		}, []string{"kind"}),
		precision: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result_precision",
			Help:      "Absolute precision of operation results, in p-adic digits.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of p-adic operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.errors,
		m.precision,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveOperation records a successful operation.
func (m *Metrics) ObserveOperation(op string, precision int, elapsed time.Duration) {
	m.operations.WithLabelValues(op).Inc()
	m.precision.Observe(float64(precision))
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveError records a failed operation under the kind of err.
func (m *Metrics) ObserveError(err error) {
	m.errors.WithLabelValues(ErrorKind(err)).Inc()
}

// WriteTextfile writes the current values to path in the textfile
// collector format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{padic.ErrInvalidPrime, "invalid_prime"},
	{padic.ErrInvalidPrecision, "invalid_precision"},
	{padic.ErrContextMismatch, "context_mismatch"},
	{padic.ErrDivisionByZero, "division_by_zero"},
	{padic.ErrDomain, "domain"},
	{padic.ErrPrecisionExhausted, "precision_exhausted"},
	{padic.ErrSyntax, "syntax"},
	{context.DeadlineExceeded, "timeout"},
	{context.Canceled, "canceled"},
}

// ErrorKind returns the label used for err in padicalc_errors_total.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "other"
}
