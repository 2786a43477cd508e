// Package metrics provides Prometheus metric collection for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metric collection interface used by services and middleware.
type Recorder interface {
	RecordAuthAttempt(op, outcome string)
	RecordTaskOp(op, outcome string)
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	authAttempts *prometheus.CounterVec
	taskOps      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklight_auth_attempts_total",
			Help: "Authentication attempts by operation and outcome.",
		}, []string{"op", "outcome"}),
		taskOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklight_task_operations_total",
			Help: "Task operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklight_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tasklight_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.authAttempts,
		c.taskOps,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// RecordAuthAttempt records a register/login/verify attempt.
func (c *Collector) RecordAuthAttempt(op, outcome string) {
	c.authAttempts.WithLabelValues(op, outcome).Inc()
}

// RecordTaskOp records a task list/create/update/delete operation.
func (c *Collector) RecordTaskOp(op, outcome string) {
	c.taskOps.WithLabelValues(op, outcome).Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
