package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonny/epsdash/internal/view"
)

// Metrics holds the Prometheus collectors of the API server.
// Each instance owns its registry so servers and tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers the API metrics.
// memo may be nil; when set its hit and miss counts are exported.
func NewMetrics(memo *view.Memo) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "epsdash_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"route", "method"},
		),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "epsdash_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "method", "status"},
		),
	}

	m.registry.MustRegister(
		m.RequestDuration,
		m.RequestsTotal,
		collectors.NewGoCollector(),
	)

	if memo != nil {
		m.registry.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "epsdash_view_memo_hits_total",
				Help: "Candidate views served from the memo",
			}, func() float64 {
				hits, _ := memo.Stats()
				return float64(hits)
			}),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Name: "epsdash_view_memo_misses_total",
				Help: "Candidate views recomputed",
			}, func() float64 {
				_, misses := memo.Stats()
				return float64(misses)
			}),
		)
	}

	return m
}

// Observe records one finished request
func (m *Metrics) Observe(route, method string, status int, seconds float64) {
	m.RequestDuration.WithLabelValues(route, method).Observe(seconds)
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// Handler returns the /metrics handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
