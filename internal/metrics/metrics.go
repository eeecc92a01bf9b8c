// Package metrics exposes Prometheus metrics for focusd.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	CompletionsTotal   *prometheus.CounterVec
	UncompletionsTotal prometheus.Counter
	WakesTotal         *prometheus.CounterVec
	AIRequestsTotal    *prometheus.CounterVec
	AIRequestDuration  *prometheus.HistogramVec
	PersistErrorsTotal prometheus.Counter
	SafetyFlagsTotal   prometheus.Counter
	Level              prometheus.Gauge
	Stats              *prometheus.GaugeVec

	registry *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		CompletionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusd_task_completions_total",
				Help: "Tasks marked complete, by complexity.",
			},
			[]string{"complexity"},
		),
		UncompletionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "focusd_task_uncompletions_total",
				Help: "Tasks marked incomplete again.",
			},
		),
		WakesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusd_snooze_wakes_total",
				Help: "Snoozed tasks woken, by source (sweep, timer, manual).",
			},
			[]string{"source"},
		),
		AIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "focusd_ai_requests_total",
				Help: "AI collaborator requests by operation and status.",
			},
			[]string{"op", "status"},
		),
		AIRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "focusd_ai_request_duration_seconds",
				Help:    "AI collaborator request duration by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		PersistErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "focusd_persist_errors_total",
				Help: "Failed state saves.",
			},
		),
		SafetyFlagsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "focusd_safety_flags_total",
				Help: "Entries flagged for concerning content.",
			},
		),
		Level: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "focusd_level",
				Help: "Current progress level.",
			},
		),
		Stats: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "focusd_stat",
				Help: "Current focus, energy and momentum.",
			},
			[]string{"stat"},
		),
		registry: reg,
	}

	reg.MustRegister(m.CompletionsTotal)
	reg.MustRegister(m.UncompletionsTotal)
	reg.MustRegister(m.WakesTotal)
	reg.MustRegister(m.AIRequestsTotal)
	reg.MustRegister(m.AIRequestDuration)
	reg.MustRegister(m.PersistErrorsTotal)
	reg.MustRegister(m.SafetyFlagsTotal)
	reg.MustRegister(m.Level)
	reg.MustRegister(m.Stats)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordCompletion(complexity string) {
	m.CompletionsTotal.WithLabelValues(complexity).Inc()
}

func (m *Metrics) RecordUncompletion() {
	m.UncompletionsTotal.Inc()
}

func (m *Metrics) RecordWake(source string, n int) {
	m.WakesTotal.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) RecordAIRequest(op, status string, seconds float64) {
	m.AIRequestsTotal.WithLabelValues(op, status).Inc()
	m.AIRequestDuration.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) RecordPersistError() {
	m.PersistErrorsTotal.Inc()
}

func (m *Metrics) RecordSafetyFlag() {
	m.SafetyFlagsTotal.Inc()
}

func (m *Metrics) SetProgress(level, focus, energy, momentum int) {
	m.Level.Set(float64(level))
	m.Stats.WithLabelValues("focus").Set(float64(focus))
	m.Stats.WithLabelValues("energy").Set(float64(energy))
	m.Stats.WithLabelValues("momentum").Set(float64(momentum))
}
