// Package metrics exposes prometheus collectors for the POS backend.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Auth operation labels.
const (
	OpSignup     = "signup"
	OpGoogleAuth = "google_auth"
	OpLogin      = "login"
	OpLogout     = "logout"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the prometheus collectors registered by the service.
type Metrics struct {
	AuthAttempts *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "benta_auth_attempts_total",
			Help: "Authentication attempts by operation and outcome.",
		}, []string{"operation", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "benta_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(m.AuthAttempts, m.HTTPRequests)
	return m
}

// RecordAuth counts one auth attempt.
func (m *Metrics) RecordAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

// Middleware counts every request by method and response status.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
