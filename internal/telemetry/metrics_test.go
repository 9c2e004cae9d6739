package telemetry_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeseshop/cheeseshop/internal/telemetry"
)

func TestProviderExportsMetrics(t *testing.T) {
	t.Parallel()

	provider, err := telemetry.NewProvider()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	})

	httpMetrics, err := telemetry.NewHTTPMetrics(provider.MeterProvider())
	require.NoError(t, err)
	require.NotNil(t, httpMetrics)

	handler := httpMetrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/pypi", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// The recorded request shows up on the metrics endpoint.
	metricsReq := httptest.NewRequest("GET", "/metrics", nil)
	metricsRR := httptest.NewRecorder()
	provider.Handler().ServeHTTP(metricsRR, metricsReq)

	require.Equal(t, http.StatusOK, metricsRR.Code)
	body, err := io.ReadAll(metricsRR.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "cheeseshop_http_requests_total")
	assert.Contains(t, string(body), "cheeseshop_http_request_duration_seconds")
}

func TestNilMetricsAreNoOp(t *testing.T) {
	t.Parallel()

	httpMetrics, err := telemetry.NewHTTPMetrics(nil)
	require.NoError(t, err)
	require.Nil(t, httpMetrics)

	// A nil receiver still produces a working pass-through middleware.
	handler := httpMetrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/pypi", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
