// Package metrics exposes Prometheus counters and histograms for oracle
// calls.
//
// Metrics live on a private registry so tests and embedded uses never
// collide with the global default registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

const (
	resultOK          = "ok"
	resultError       = "error"
	resultCanceled    = "canceled"
	resultUnsupported = "unsupported"
	resultUnavailable = "unavailable"
)

// Oracle records per-body oracle call outcomes and latency.
type Oracle struct {
	registry *prometheus.Registry

	// OracleCalls counts calls by oracle, body and result.
	OracleCalls *prometheus.CounterVec

	// OracleLatency tracks call duration by oracle.
	OracleLatency *prometheus.HistogramVec

	// SnapshotBodies tracks how many bodies made it into each snapshot.
	SnapshotBodies prometheus.Histogram
}

var _ ports.OracleObserver = (*Oracle)(nil)

// NewOracle builds the collectors and registers them, plus the Go runtime
// and process collectors, on a fresh registry.
func NewOracle() *Oracle {
	reg := prometheus.NewRegistry()

	m := &Oracle{
		registry: reg,
		OracleCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rashi",
				Name:      "oracle_calls_total",
				Help:      "Total number of ephemeris oracle calls",
			},
			[]string{"oracle", "body", "result"},
		),
		OracleLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rashi",
				Name:      "oracle_call_duration_seconds",
				Help:      "Duration of ephemeris oracle calls in seconds",
				// Analytic calls are microseconds, Horizons calls are network bound.
				Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"oracle"},
		),
		SnapshotBodies: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "rashi",
				Name:      "snapshot_bodies",
				Help:      "Number of bodies present in each built snapshot",
				Buckets:   prometheus.LinearBuckets(0, 1, domain.BodyCount+1),
			},
		),
	}

	reg.MustRegister(
		m.OracleCalls,
		m.OracleLatency,
		m.SnapshotBodies,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCall implements ports.OracleObserver.
func (m *Oracle) ObserveCall(oracle string, body domain.Body, elapsed time.Duration, err error) {
	m.OracleCalls.WithLabelValues(oracle, body.String(), classify(err)).Inc()
	m.OracleLatency.WithLabelValues(oracle).Observe(elapsed.Seconds())
}

// ObserveSnapshot records the size of a built snapshot.
func (m *Oracle) ObserveSnapshot(s domain.Snapshot) {
	m.SnapshotBodies.Observe(float64(s.Len()))
}

// Registry returns the private registry.
func (m *Oracle) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Oracle) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func classify(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resultCanceled
	case errors.Is(err, domain.ErrUnsupportedBody), errors.Is(err, domain.ErrNoOracleCode):
		return resultUnsupported
	case domain.KindOf(err) == domain.KindOracle && errors.Is(err, domain.ErrOracleUnavailable):
		return resultUnavailable
	default:
		return resultError
	}
}
