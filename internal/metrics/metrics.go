// Package metrics exposes Prometheus metrics for the enrichment pipeline and
// the HTTP server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsmap"

// Metrics holds the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	ArticlesEnriched prometheus.Counter
	ArticlesSkipped  *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	PipelineRuns     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// New creates the collectors on a private registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ArticlesEnriched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_enriched_total",
			Help:      "Articles that made it through summarize, extract and geocode.",
		}),
		ArticlesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_skipped_total",
			Help:      "Articles dropped from a result, by the stage that failed.",
		}, []string{"stage"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the headline, completion and geocoding upstreams.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"service", "outcome"}),
		PipelineRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Enrichment runs by outcome (ok, partial, failed).",
		}, []string{"outcome"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ArticleEnriched() {
	if m == nil {
		return
	}
	m.ArticlesEnriched.Inc()
}

func (m *Metrics) ArticleSkipped(stage string) {
	if m == nil {
		return
	}
	m.ArticlesSkipped.WithLabelValues(stage).Inc()
}

func (m *Metrics) ObserveUpstream(service string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamDuration.WithLabelValues(service, outcome).Observe(time.Since(started).Seconds())
}

func (m *Metrics) PipelineRun(outcome string) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) HTTPRequest(method string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
