package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Proxy outcomes used as the "outcome" label.
const (
	OutcomePreflight        = "preflight"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeBadRequest       = "bad_request"
	OutcomeUpstreamError    = "upstream_error"
	OutcomeOK               = "ok"
	OutcomeServerError      = "server_error"
)

// Metrics holds the Prometheus collectors of the proxy.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	proxyRequests    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		proxyRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jiraview_proxy_requests_total",
				Help: "Total number of proxy invocations by outcome",
			},
			[]string{"outcome"},
		),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jiraview_upstream_requests_total",
				Help: "Total number of Jira search calls by HTTP status code",
			},
			[]string{"code"},
		),
		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jiraview_upstream_request_duration_seconds",
				Help:    "Duration of Jira search calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(
		m.proxyRequests,
		m.upstreamRequests,
		m.upstreamDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOutcome counts one finished proxy invocation.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.proxyRequests.WithLabelValues(outcome).Inc()
}

// RecordUpstream counts one upstream call. Code 0 means no response was received.
func (m *Metrics) RecordUpstream(code int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.upstreamRequests.WithLabelValues(label).Inc()
	m.upstreamDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
