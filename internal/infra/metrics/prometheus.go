// Package metrics exposes store and finance API measurements to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finance-tracker/client/internal/application/adapter"
)

const namespace = "finance_client"

// Recorder implements adapter.MetricsRecorder on its own registry.
type Recorder struct {
	registry        *prometheus.Registry
	remoteCalls     *prometheus.CounterVec
	remoteDuration  *prometheus.HistogramVec
	loads           *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	snapshotVersion prometheus.Gauge
}

// NewRecorder creates a Recorder with Go runtime and process collectors registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		remoteCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_calls_total",
				Help:      "Total number of finance API calls by operation and HTTP status (0 when unreachable)",
			},
			[]string{"operation", "status"},
		),
		remoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_call_duration_seconds",
				Help:      "Finance API call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_loads_total",
				Help:      "Total number of store loads by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_mutations_total",
				Help:      "Total number of store mutations by operation and status",
			},
			[]string{"operation", "status"},
		),
		snapshotVersion: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_version",
				Help:      "Current store snapshot version",
			},
		),
	}
}

// ObserveRemoteCall records one finance API call.
func (r *Recorder) ObserveRemoteCall(operation string, status int, duration time.Duration) {
	r.remoteCalls.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	r.remoteDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLoad records the outcome of a store load.
func (r *Recorder) RecordLoad(resource, outcome string) {
	r.loads.WithLabelValues(resource, outcome).Inc()
}

// RecordMutation records the outcome of a store mutation.
func (r *Recorder) RecordMutation(operation string, succeeded bool) {
	status := "failed"
	if succeeded {
		status = "succeeded"
	}
	r.mutations.WithLabelValues(operation, status).Inc()
}

// SetSnapshotVersion publishes the current store snapshot version.
func (r *Recorder) SetSnapshotVersion(version uint64) {
	r.snapshotVersion.Set(float64(version))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

var _ adapter.MetricsRecorder = (*Recorder)(nil)
