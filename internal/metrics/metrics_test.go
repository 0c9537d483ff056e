package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/wealthin/agent-backend/internal/metrics"
)

func TestMiddleware_WrapsRequestWithoutAlteringResponse(t *testing.T) {
	e := echo.New()
	e.Use(metrics.Middleware())
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
}

func TestHandler_ServesPrometheusExpositionFormat(t *testing.T) {
	e := echo.New()
	e.GET("/metrics", metrics.Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRecordHelpers_DoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.RecordAgentIteration("tool_call")
		metrics.ObserveAgentLoopDuration(0.5)
		metrics.ObserveToolDispatch("web_search", "success", 0.2)
		metrics.RecordExtractionStrategy("vision", "success")
		metrics.RecordRouterLabel("mudra_dpr")
		metrics.SetWSConnections(3)
	})
}
