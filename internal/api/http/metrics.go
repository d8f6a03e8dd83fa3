package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/CareFlow/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// MetricsHandler serves a JSON view of the counters
type MetricsHandler struct {
	metrics *monitoring.Metrics
}

// NewMetricsHandler creates a metrics handler
func NewMetricsHandler(metrics *monitoring.Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
	FlowInvocations  int64   `json:"flow_invocations"`
	FallbackRate     float64 `json:"fallback_rate"`
	RetryRate        float64 `json:"retry_rate"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// MetricsReport is the body returned by JSON
type MetricsReport struct {
	Timestamp time.Time                  `json:"timestamp"`
	Counters  monitoring.MetricsSnapshot `json:"counters"`
	Summary   MetricsSummary             `json:"summary"`
}

// JSON returns the current counters and derived rates
func (m *MetricsHandler) JSON(c *gin.Context) {
	snapshot := m.metrics.Snapshot()
	c.JSON(http.StatusOK, MetricsReport{
		Timestamp: time.Now(),
		Counters:  snapshot,
		Summary:   summarize(snapshot),
	})
}

func summarize(s monitoring.MetricsSnapshot) MetricsSummary {
	summary := MetricsSummary{
		TotalRequests:   s.TotalRequests,
		FlowInvocations: s.FlowInvocations,
		UptimeSeconds:   s.UptimeSeconds,
	}
	if s.TotalRequests > 0 {
		summary.AverageLatencyMs = s.TotalDuration / float64(s.TotalRequests) * 1000
		summary.ErrorRate = float64(s.TotalErrors) / float64(s.TotalRequests)
	}
	if s.FlowInvocations > 0 {
		summary.FallbackRate = float64(s.FlowFailures) / float64(s.FlowInvocations)
		// Attempts beyond the first one per invocation
		if s.FlowAttempts > s.FlowInvocations {
			summary.RetryRate = float64(s.FlowAttempts-s.FlowInvocations) / float64(s.FlowInvocations)
		}
	}
	return summary
}
