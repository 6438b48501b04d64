package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRouteAndCode(t *testing.T) {
	m := New()
	handler := m.Middleware("/api/tasks/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("/api/tasks/{id}", "GET", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}

func TestObserveSearch(t *testing.T) {
	m := New()
	m.ObserveSearch("ok", 5*time.Millisecond)
	m.ObserveSearch("ok", 5*time.Millisecond)
	m.ObserveSearch("failed", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchCounter.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchCounter.WithLabelValues("failed")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveSearch("empty", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `taskify_search_queries_total{status="empty"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveSearch("ok", time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SearchCounter.WithLabelValues("ok")))
}
