package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	sessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_sessions_started_total",
			Help: "Exam sessions created, by topic",
		},
		[]string{"topic"},
	)

	sessionsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_sessions_submitted_total",
			Help: "Exam sessions submitted, by reason (confirmed|timeout)",
		},
		[]string{"reason"},
	)

	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "quiz_active_sessions",
		Help: "Sessions currently held in memory",
	})

	prepareWarnings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_prepare_warnings_total",
			Help: "Data-quality warnings raised while preparing question sets",
		},
		[]string{"kind"},
	)

	storeFetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_store_fetch_errors_total",
			Help: "Failed question set fetches",
		},
		[]string{"store"},
	)
)

func init() {
	prometheus.MustRegister(
		requestCounter,
		requestDuration,
		sessionsStarted,
		sessionsSubmitted,
		activeSessions,
		prepareWarnings,
		storeFetchErrors,
	)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		requestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		requestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
