// Package metrics exposes prometheus counters and summaries for analyses and HTTP traffic.
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

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	fallbacks        *prometheus.CounterVec
	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Summary
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.SummaryVec
}

var objectives = map[float64]float64{
	0.5:  0.05,
	0.9:  0.01,
	0.95: 0.005,
	0.99: 0.001,
}

// New registers all collectors on a fresh registry, including the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ats_provider_fallbacks_total",
			Help: "Number of provider-backed stages that used their deterministic fallback",
		}, []string{"component"}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ats_analyses_total",
			Help: "Number of completed analyses by result",
		}, []string{"result"}),
		analysisDuration: factory.NewSummary(prometheus.SummaryOpts{
			Name:       "ats_analysis_duration_seconds",
			Help:       "Analysis duration in seconds",
			Objectives: objectives,
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
		requestDuration: factory.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "http_request_duration_seconds",
			Help:       "HTTP request duration in seconds",
			Objectives: objectives,
		}, []string{"method", "path", "status_code"}),
	}
}

// ObserveFallback counts one fallback for component.
func (m *Metrics) ObserveFallback(component string) {
	m.fallbacks.WithLabelValues(component).Inc()
}

// ObserveAnalysis records one analysis outcome.
func (m *Metrics) ObserveAnalysis(d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.analyses.WithLabelValues(result).Inc()
	m.analysisDuration.Observe(d.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// unmatchedPath labels requests that matched no route.
const unmatchedPath = "unmatched"

// Middleware records request counts and durations. Requests are labelled by
// route pattern when the mux sets one, so path parameters do not explode
// label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = unmatchedPath
		}
		status := strconv.Itoa(rec.status)
		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, path, status).Inc()
	})
}
