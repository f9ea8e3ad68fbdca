// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lessonforge"

// Generation outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalid         = "invalid"
	OutcomeProviderError   = "provider_error"
	OutcomeSafetyRejected  = "safety_rejected"
	OutcomePersistError    = "persistence_error"
	OutcomeUnexpectedError = "error"
)

// Metrics holds every collector on its own registry.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	generations   *prometheus.CounterVec
	genDuration   prometheus.Histogram
	rejections    prometheus.Counter
	aiCalls       *prometheus.CounterVec
	aiRetries     *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	enrichSkipped prometheus.Counter
}

// New creates and registers all collectors, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lesson_generations_total",
			Help:      "Lesson generation requests by outcome.",
		}, []string{"outcome"}),
		genDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lesson_generation_duration_seconds",
			Help:      "End-to-end lesson generation latency.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_rejections_total",
			Help:      "Generated lessons rejected by the safety review.",
		}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "AI provider operations by task, model and result.",
		}, []string{"task", "model", "result"}),
		aiRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_retries_total",
			Help:      "Retried AI provider attempts by model and error code.",
		}, []string{"model", "code"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_fallbacks_total",
			Help:      "Switches from a failed primary model to the fallback model.",
		}, []string{"from", "to"}),
		enrichSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_skipped_total",
			Help:      "Visual enrichment calls that failed and were skipped.",
		}),
	}

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.generations,
		m.genDuration,
		m.rejections,
		m.aiCalls,
		m.aiRetries,
		m.fallbacks,
		m.enrichSkipped,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveGeneration records the outcome of one lesson generation.
func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	m.generations.WithLabelValues(outcome).Inc()
	m.genDuration.Observe(d.Seconds())
	if outcome == OutcomeSafetyRejected {
		m.rejections.Inc()
	}
}

// ObserveAICall records one provider operation. result is "ok", "cached"
// or an error code.
func (m *Metrics) ObserveAICall(task, model, result string) {
	m.aiCalls.WithLabelValues(task, model, result).Inc()
}

// ObserveRetry records one retried attempt.
func (m *Metrics) ObserveRetry(model, code string) {
	m.aiRetries.WithLabelValues(model, code).Inc()
}

// ObserveFallback records a switch to the fallback model.
func (m *Metrics) ObserveFallback(from, to string) {
	m.fallbacks.WithLabelValues(from, to).Inc()
}

// ObserveEnrichmentSkipped records a failed enrichment call.
func (m *Metrics) ObserveEnrichmentSkipped() {
	m.enrichSkipped.Inc()
}
