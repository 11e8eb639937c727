// Package metrics exposes Prometheus observability primitives for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics registers and holds the Prometheus collectors.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	submissions  *prometheus.CounterVec
	tokenIssued  prometheus.Counter
	tokenRevoked prometheus.Counter
}

// New registers the collectors on the default registry so promhttp serves
// them without extra wiring.
func New() *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackpod_http_requests_total",
			Help: "Counts HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedbackpod_http_duration_seconds",
			Help:    "HTTP request latency per method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedbackpod_feedback_submissions_total",
			Help: "Counts feedback submissions by outcome.",
		}, []string{"outcome"}),
		tokenIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedbackpod_tokens_issued_total",
			Help: "Counts access/refresh token pairs issued.",
		}),
		tokenRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedbackpod_tokens_revoked_total",
			Help: "Counts access tokens blacklisted on logout.",
		}),
	}
	prometheus.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.submissions,
		m.tokenIssued,
		m.tokenRevoked,
	)
	return m
}

// ObserveSubmission records one submission outcome: accepted, duplicate,
// rate_limited, or rejected.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTokenIssued() {
	if m == nil {
		return
	}
	m.tokenIssued.Inc()
}

func (m *Metrics) ObserveTokenRevoked() {
	if m == nil {
		return
	}
	m.tokenRevoked.Inc()
}

// GinMiddleware instruments every request. The route template is used as
// the label so path parameters do not explode cardinality.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
