package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the pipeline backend.
var Metrics = struct {
	PipelineRunDuration prometheus.Histogram
	PipelineRunsTotal   *prometheus.CounterVec
	RecordsProcessed    prometheus.Counter
	RecordsDropped      prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics() {
	Metrics.PipelineRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adpipe_pipeline_run_duration_seconds",
			Help:    "Duration of full pipeline runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
	)

	Metrics.PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adpipe_pipeline_runs_total",
			Help: "Total pipeline runs, by source and outcome.",
		},
		[]string{"source", "status"},
	)

	Metrics.RecordsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adpipe_records_processed_total",
			Help: "Total records emitted by the pipeline.",
		},
	)

	Metrics.RecordsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "adpipe_records_dropped_total",
			Help: "Total raw records dropped during cleaning.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adpipe_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "adpipe_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	prometheus.MustRegister(
		Metrics.PipelineRunDuration,
		Metrics.PipelineRunsTotal,
		Metrics.RecordsProcessed,
		Metrics.RecordsDropped,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// ObserveRun records the outcome of one pipeline run.
func ObserveRun(source string, err error, elapsed time.Duration, processed, dropped int) {
	if source == "" {
		source = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	Metrics.PipelineRunsTotal.WithLabelValues(source, status).Inc()
	if err != nil {
		return
	}
	Metrics.PipelineRunDuration.Observe(elapsed.Seconds())
	Metrics.RecordsProcessed.Add(float64(processed))
	Metrics.RecordsDropped.Add(float64(dropped))
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if len(path) > 12 && path[:12] == "/api/videos/" {
		return "/api/videos/:videoId"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
