package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestIncrementGeneration(t *testing.T) {
	m := New()
	m.IncrementGeneration("json", 120, 80)
	m.IncrementGeneration("json", 100, 90)
	m.IncrementGeneration("w3fix", 100, 90)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Generations.WithLabelValues("json")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("w3fix")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.Generations.WithLabelValues("base64")))
}

func TestIncrementDocument(t *testing.T) {
	m := New()
	m.IncrementDocument()
	require.Equal(t, 1.0, testutil.ToFloat64(m.Documents))
}

func TestLanguageStoreFailures(t *testing.T) {
	m := New()
	m.IncrementLanguageStoreFailure("get")
	require.Equal(t, 1.0, testutil.ToFloat64(m.LanguageStoreFailures.WithLabelValues("get")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.IncrementGeneration("json", 1, 1)
		m.IncrementDocument()
		m.ObserveRenderLatency("generate", time.Millisecond)
		m.IncrementLanguageStoreFailure("set")
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.IncrementGeneration("base64", 10, 10)
	m.ObserveRenderLatency("document", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `travmd_payload_generations_total{format="base64"} 1`)
	require.Contains(t, body, "travmd_render_duration_seconds_bucket")
	require.Contains(t, body, "go_goroutines")
}

func TestSeparateInstancesDoNotCollide(t *testing.T) {
	require.NotPanics(t, func() {
		New()
		New()
	})
}
