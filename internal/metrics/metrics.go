// Package metrics exposes prometheus collectors for the HTTP shell, the
// agent loop (C11), tool dispatch (C9), the extraction router (C10) and
// the document-extraction strategy (C2), served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthin_http_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wealthin_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	agentLoopIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthin_agent_loop_iterations_total",
		Help: "Total ReAct loop iterations, by outcome (tool_call/final_answer/max_iterations).",
	}, []string{"outcome"})

	agentLoopDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wealthin_agent_loop_duration_seconds",
		Help:    "Wall-clock duration of one complete agent loop run.",
		Buckets: prometheus.DefBuckets,
	})

	toolDispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wealthin_tool_dispatch_duration_seconds",
		Help:    "Tool dispatch latency by tool name and outcome.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool", "outcome"})

	extractionStrategyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthin_extraction_strategy_total",
		Help: "Document extraction attempts by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	routerLabelTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wealthin_router_label_total",
		Help: "Router classification decisions by resolved label.",
	}, []string{"label"})

	wsConnectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wealthin_ws_connections",
		Help: "Current number of open websocket push-channel connections.",
	})
)

// Middleware records per-request count/latency metrics (grounded on the
// Nexus pack's PrometheusMiddleware, adapted from Gin to Echo).
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(duration)
			return err
		}
	}
}

// Handler serves /metrics for Prometheus scraping.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// RecordAgentIteration records one ReAct loop step outcome (C11).
func RecordAgentIteration(outcome string) {
	agentLoopIterationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveAgentLoopDuration records the wall-clock time of one complete
// agent loop run (C11).
func ObserveAgentLoopDuration(seconds float64) {
	agentLoopDuration.Observe(seconds)
}

// ObserveToolDispatch records tool dispatch latency and outcome (C9).
func ObserveToolDispatch(tool, outcome string, seconds float64) {
	toolDispatchDuration.WithLabelValues(tool, outcome).Observe(seconds)
}

// RecordExtractionStrategy records which extraction strategy ran and
// whether it succeeded (C2).
func RecordExtractionStrategy(strategy, outcome string) {
	extractionStrategyTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordRouterLabel records the router's resolved intent label (C10).
func RecordRouterLabel(label string) {
	routerLabelTotal.WithLabelValues(label).Inc()
}

// SetWSConnections sets the current open-connection gauge (internal/ws).
func SetWSConnections(count float64) {
	wsConnectionsGauge.Set(count)
}
