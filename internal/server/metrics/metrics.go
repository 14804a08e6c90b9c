// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels for auth attempts.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeConflict   = "conflict"
	OutcomeNotFound   = "not_found"
	OutcomeDenied     = "denied"
	OutcomeError      = "error"
	OperationRegister = "register"
	OperationLogin    = "login"
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AuthAttempts    *prometheus.CounterVec
	StoreUp         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseauth_http_requests_total",
				Help: "Total number of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courseauth_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseauth_auth_attempts_total",
				Help: "Sign-up and sign-in attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		StoreUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "courseauth_store_up",
				Help: "1 when the last store ping succeeded, 0 otherwise",
			},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.AuthAttempts, m.StoreUp)

	return m
}

// NewRegistry returns a registry with the Go and process collectors plus
// the service metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg, NewMetrics(reg)
}

func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, status).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (m *Metrics) RecordAuthAttempt(operation, outcome string) {
	m.AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.StoreUp.Set(1)
		return
	}
	m.StoreUp.Set(0)
}
