package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFlowInvocation(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.RecordFlowInvocation("qna_agent", OutcomeSuccess, 10*time.Millisecond)
	metrics.RecordFlowInvocation("qna_agent", OutcomeHTTPError, 10*time.Millisecond)
	metrics.RecordFlowAttempt("qna_agent")
	metrics.RecordFlowAttempt("qna_agent")
	metrics.RecordFallback("qna_agent", OutcomeHTTPError)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlowInvocations.WithLabelValues("qna_agent", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.FlowAttempts.WithLabelValues("qna_agent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlowFallbacks.WithLabelValues("qna_agent", OutcomeHTTPError)))

	snap := metrics.Snapshot()
	assert.Equal(t, int64(2), snap.FlowInvocations)
	assert.Equal(t, int64(1), snap.FlowFailures)
	assert.Equal(t, int64(2), snap.FlowAttempts)
}

func TestNewMetricsOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Middleware(metrics))
	router.GET("/items/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := metrics.Snapshot()
	require.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestTimer(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	timer := NewTimer(metrics, "bill_analyzer")
	d := timer.Stop(OutcomeTransportError)

	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlowInvocations.WithLabelValues("bill_analyzer", OutcomeTransportError)))

	assert.NotPanics(t, func() {
		NewTimer(nil, "bill_analyzer").Stop(OutcomeSuccess)
	})
}
