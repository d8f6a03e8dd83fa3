package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow outcomes used as label values
const (
	OutcomeSuccess         = "success"
	OutcomeUnknownEndpoint = "unknown_endpoint"
	OutcomeRejected        = "rejected"
	OutcomeTransportError  = "transport_error"
	OutcomeValidationError = "validation_error"
	OutcomeHTTPError       = "http_error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Flow metrics
	FlowInvocations *prometheus.CounterVec
	FlowDuration    *prometheus.HistogramVec
	FlowAttempts    *prometheus.CounterVec
	FlowFallbacks   *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	FlowInvocations int64   `json:"flow_invocations"`
	FlowFailures    int64   `json:"flow_failures"`
	FlowAttempts    int64   `json:"flow_attempts"`
	TotalDuration   float64 `json:"total_duration_seconds"` // sum of all request durations
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careflow_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careflow_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careflow_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careflow_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Flow metrics
		FlowInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careflow_flow_invocations_total",
				Help: "Total number of flow invocations by outcome",
			},
			[]string{"flow", "outcome"},
		),
		FlowDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careflow_flow_invocation_duration_seconds",
				Help:    "Flow invocation duration in seconds, retries included",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 240},
			},
			[]string{"flow"},
		),
		FlowAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careflow_flow_attempts_total",
				Help: "Total number of outbound HTTP attempts",
			},
			[]string{"flow"},
		),
		FlowFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careflow_flow_fallbacks_total",
				Help: "Total number of fallback messages served",
			},
			[]string{"flow", "reason"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "careflow_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFlowInvocation records a completed flow invocation
func (m *Metrics) RecordFlowInvocation(flow, outcome string, duration time.Duration) {
	m.FlowInvocations.WithLabelValues(flow, outcome).Inc()
	m.FlowDuration.WithLabelValues(flow).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.FlowInvocations++
	if outcome != OutcomeSuccess {
		m.snapshot.FlowFailures++
	}
	m.mu.Unlock()
}

// RecordFlowAttempt records one outbound HTTP attempt
func (m *Metrics) RecordFlowAttempt(flow string) {
	m.FlowAttempts.WithLabelValues(flow).Inc()

	m.mu.Lock()
	m.snapshot.FlowAttempts++
	m.mu.Unlock()
}

// RecordFallback records a fallback message served in place of a real answer
func (m *Metrics) RecordFallback(flow, reason string) {
	m.FlowFallbacks.WithLabelValues(flow, reason).Inc()
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
