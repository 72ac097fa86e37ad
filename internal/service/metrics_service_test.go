package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordTransition("approve")
	m.RecordTransition("approve")
	m.RecordFollowUp(2)
	m.RecordCertificate("rendered")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/adoption-requests", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transitions.WithLabelValues("approve")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.followUps.WithLabelValues("2")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.certificates.WithLabelValues("rendered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/api/v1/adoption-requests", "200")))
}

func TestMetricsServiceCacheRatio(t *testing.T) {
	m := NewMetricsService()
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 0.0001)
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.RecordTransition("reject")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `adoption_transitions_total{action="reject"} 1`)

	var nilMetrics *MetricsService
	w = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	nilMetrics.RecordTransition("approve")
}
