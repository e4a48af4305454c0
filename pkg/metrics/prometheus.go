// Package metrics provides Prometheus metrics for the judgeboard admin
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Datastore reads
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec

	// Core pipeline
	leaderboardBuilds   prometheus.Counter
	exportsBuilt        *prometheus.CounterVec
	finalsEventsSkipped prometheus.Counter
	criteriaUpdates     prometheus.Counter

	// Process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "judgeboard",
		subsystem:        "admin",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.fetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "datastore_fetch_duration_ms",
		Help:      "Datastore read latency in milliseconds by operation.",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.fetchErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "datastore_fetch_errors_total",
		Help:      "Datastore read failures by operation.",
	}, []string{"op"})

	m.leaderboardBuilds = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_builds_total",
		Help:      "Leaderboard aggregation runs.",
	})

	m.exportsBuilt = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_built_total",
		Help:      "Export artifacts produced, by kind.",
	}, []string{"kind"})

	m.finalsEventsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "finals_events_skipped_total",
		Help:      "Events dropped from the final results export after a failed fetch.",
	})

	m.criteriaUpdates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "criteria_updates_total",
		Help:      "Evaluation criteria persist operations.",
	})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Allocated heap bytes.",
	})

	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current goroutine count.",
	})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// ObserveFetch records the latency of one datastore read.
func ObserveFetch(op string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchDuration.WithLabelValues(op).Observe(durationMs)
}

// RecordFetchError counts a failed datastore read.
func RecordFetchError(op string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.WithLabelValues(op).Inc()
}

// RecordLeaderboardBuild counts one leaderboard aggregation run.
func RecordLeaderboardBuild() {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardBuilds.Inc()
}

// RecordExport counts one produced artifact by kind
// (leaderboard, certificate, finals).
func RecordExport(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.exportsBuilt.WithLabelValues(kind).Inc()
}

// RecordFinalsEventSkipped counts an event dropped from the finals export.
func RecordFinalsEventSkipped() {
	if !globalManager.enabled {
		return
	}
	globalManager.finalsEventsSkipped.Inc()
}

// RecordCriteriaUpdate counts one criteria persist.
func RecordCriteriaUpdate() {
	if !globalManager.enabled {
		return
	}
	globalManager.criteriaUpdates.Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}
