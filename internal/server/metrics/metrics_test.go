package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "GET /users/me", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "GET /users/me", 200, 5*time.Millisecond)
	m.HookFailed(errors.New("x"))
	m.RateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /users/me", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hookFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.HookFailed(nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "accounts_after_update_hook_failures_total 1")
}
