// Package metrics holds the Prometheus collectors for circular generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joseph-ayodele/event-circulars/constants"
)

const namespace = "circulars"

// Stage names used as the "stage" label.
const (
	StageExtract = "extract"
	StageRender  = "render"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	gatherer prometheus.Gatherer

	generateTotal  *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	eventTypeTotal *prometheus.CounterVec
	httpResponses  *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{gatherer: reg}

	m.generateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generate_total",
		Help:      "Circular generation requests by outcome",
	}, []string{"outcome"})
	m.stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Time spent per pipeline stage",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"stage"})
	m.eventTypeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_type_total",
		Help:      "Generated circulars by canonical event type",
	}, []string{"event_type"})
	m.httpResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_responses_total",
		Help:      "HTTP responses by route and status code",
	}, []string{"route", "code"})

	reg.MustRegister(m.generateTotal, m.stageDuration, m.eventTypeTotal, m.httpResponses)
	return m
}

func (m *Metrics) ObserveOutcome(o constants.Outcome) {
	if m == nil {
		return
	}
	m.generateTotal.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveEventType counts the model's free-form event type under its canonical
// label so the series stay bounded.
func (m *Metrics) ObserveEventType(raw string) {
	if m == nil {
		return
	}
	et, _ := constants.Canonicalize(raw)
	m.eventTypeTotal.WithLabelValues(string(et)).Inc()
}

func (m *Metrics) ObserveResponse(route string, code int) {
	if m == nil {
		return
	}
	m.httpResponses.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
