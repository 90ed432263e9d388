// Package metrics exposes Prometheus counters for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded for auth attempts.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder is what the services depend on.
type Recorder interface {
	RecordAuth(operation, outcome string)
	RecordHTTPRequest(method string, status int, latency time.Duration)
}

type Collector struct {
	authAttempts *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_auth_attempts_total",
			Help: "Login and registration attempts by outcome.",
		}, []string{"operation", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.authAttempts, c.httpRequests, c.httpLatency)
	return c
}

func (c *Collector) RecordAuth(operation, outcome string) {
	c.authAttempts.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(method string, status int, latency time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.httpLatency.Observe(latency.Seconds())
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything; used where metrics are not wired.
type Nop struct{}

func (Nop) RecordAuth(string, string)                    {}
func (Nop) RecordHTTPRequest(string, int, time.Duration) {}
