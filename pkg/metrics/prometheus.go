// Package metrics provides Prometheus metrics for the prospect valuation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets are in milliseconds. A valuation is table reads and a few
// float operations, so most observations land well under a millisecond.
var latencyBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

// Manager manages all Prometheus metrics for the valuation service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Valuation metrics
	valuations       *prometheus.CounterVec
	valuationLatency *prometheus.HistogramVec
	validationErrors *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
	valuationErrors  *prometheus.CounterVec
	batchSize        prometheus.Histogram

	// Batch work queue metrics
	queueSize     prometheus.Gauge
	queueRejects  *prometheus.CounterVec
	jobsProcessed prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default registerer.
var customRegistry *prometheus.Registry //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init rebuilds the global manager on a fresh registry that also carries the
// Go and process collectors. Call it at startup before services or handlers
// capture Default or GetRegistry.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	customRegistry = registry
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prospect",
		subsystem:        "valuation",
		histogramBuckets: latencyBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.valuations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computed_total",
			Help:      "Total number of valuations computed by model, tier and position",
		},
		[]string{"model", "tier", "position"},
	)

	m.valuationLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "compute_latency_milliseconds",
			Help:      "Valuation compute latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"model"},
	)

	m.validationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_errors_total",
			Help:      "Total number of rejected inputs by field",
		},
		[]string{"field"},
	)

	m.fallbacks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "segment_fallbacks_total",
			Help:      "Total number of valuations served from a coarser table",
		},
		[]string{"model"},
	)

	m.valuationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of valuations that failed after validation",
		},
		[]string{"model", "error_type"},
	)

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Number of items per batch request",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Batch jobs waiting for a worker",
	})

	m.queueRejects = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "queue_rejects_total",
			Help:      "Batch jobs the queue refused, by reason",
		},
		[]string{"reason"},
	)

	m.jobsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "jobs_processed_total",
		Help:      "Batch jobs run by the worker pool",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordValuation counts one computed valuation.
func (m *Manager) RecordValuation(model, tier, position string) {
	if !m.enabled {
		return
	}
	m.valuations.WithLabelValues(model, tier, position).Inc()
}

// RecordValuationLatency records compute latency in milliseconds.
func (m *Manager) RecordValuationLatency(model string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.valuationLatency.WithLabelValues(model).Observe(latencyMs)
}

// RecordValidationError counts one rejected input.
func (m *Manager) RecordValidationError(field string) {
	if !m.enabled {
		return
	}
	m.validationErrors.WithLabelValues(field).Inc()
}

// RecordFallback counts one valuation that used a fallback table.
func (m *Manager) RecordFallback(model string) {
	if !m.enabled {
		return
	}
	m.fallbacks.WithLabelValues(model).Inc()
}

// RecordValuationError counts one failed valuation.
func (m *Manager) RecordValuationError(model, errorType string) {
	if !m.enabled {
		return
	}
	m.valuationErrors.WithLabelValues(model, errorType).Inc()
}

// RecordBatchSize observes the size of one batch request.
func (m *Manager) RecordBatchSize(n int) {
	if !m.enabled {
		return
	}
	m.batchSize.Observe(float64(n))
}

// UpdateQueueSize sets the number of queued batch jobs.
func (m *Manager) UpdateQueueSize(n int) {
	if !m.enabled {
		return
	}
	m.queueSize.Set(float64(n))
}

// RecordQueueReject counts a job the queue refused.
func (m *Manager) RecordQueueReject(reason string) {
	if !m.enabled {
		return
	}
	m.queueRejects.WithLabelValues(reason).Inc()
}

// RecordJobProcessed counts a job run by a worker.
func (m *Manager) RecordJobProcessed() {
	if !m.enabled {
		return
	}
	m.jobsProcessed.Inc()
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers record on the global manager.

// Default returns the global manager.
func Default() *Manager { return globalManager }

// RecordValuation increments the global valuation counter.
func RecordValuation(model, tier, position string) {
	globalManager.RecordValuation(model, tier, position)
}

// RecordValuationLatency records compute latency on the global manager.
func RecordValuationLatency(model string, latencyMs float64) {
	globalManager.RecordValuationLatency(model, latencyMs)
}

// RecordValidationError counts a rejected input on the global manager.
func RecordValidationError(field string) {
	globalManager.RecordValidationError(field)
}

// RecordFallback counts a fallback on the global manager.
func RecordFallback(model string) {
	globalManager.RecordFallback(model)
}

// RecordValuationError counts a failed valuation on the global manager.
func RecordValuationError(model, errorType string) {
	globalManager.RecordValuationError(model, errorType)
}

// RecordBatchSize observes a batch size on the global manager.
func RecordBatchSize(n int) {
	globalManager.RecordBatchSize(n)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
