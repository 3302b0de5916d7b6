// Package metrics records conversion counters and durations in a private
// Prometheus registry and writes them as a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/backmassage/mtsmux/internal/pipeline"
)

// Metrics implements pipeline.Recorder.
type Metrics struct {
	reg *prometheus.Registry

	PlanAttempts      *prometheus.CounterVec
	PlanDuration      *prometheus.HistogramVec
	Fallbacks         prometheus.Counter
	Transcodes        *prometheus.CounterVec
	TranscodeDuration prometheus.Histogram
}

// conversionBuckets span a near-instant remux to a long re-encode.
var conversionBuckets = []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600, 1800}

// New registers every collector in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		PlanAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mtsmux_plan_attempts_total",
				Help: "Total number of plan runs by plan and result",
			},
			[]string{"plan", "result"},
		),
		PlanDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mtsmux_plan_duration_seconds",
				Help:    "Plan run duration in seconds",
				Buckets: conversionBuckets,
			},
			[]string{"plan"},
		),
		Fallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "mtsmux_fallbacks_total",
				Help: "Total number of fallbacks to a later plan",
			},
		),
		Transcodes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mtsmux_transcodes_total",
				Help: "Total number of conversions by outcome",
			},
			[]string{"outcome"},
		),
		TranscodeDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mtsmux_transcode_duration_seconds",
				Help:    "End-to-end conversion duration in seconds",
				Buckets: conversionBuckets,
			},
		),
	}
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) ObserveAttempt(plan string, status pipeline.AttemptStatus, elapsed time.Duration) {
	m.PlanAttempts.WithLabelValues(plan, status.String()).Inc()
	m.PlanDuration.WithLabelValues(plan).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFallback() {
	m.Fallbacks.Inc()
}

func (m *Metrics) ObserveOutcome(outcome string, elapsed time.Duration) {
	m.Transcodes.WithLabelValues(outcome).Inc()
	m.TranscodeDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes every metric to path in the Prometheus text format.
// The write is atomic, so a collector never reads a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
