package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cyclesTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	compositeScore prometheus.Gauge
	incidentCount  prometheus.Gauge
	stageLatency   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cyclesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskpulse_cycles_total",
				Help: "Total number of collection cycles by status",
			},
			[]string{"status"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		compositeScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "riskpulse_composite_score",
				Help: "Composite risk score of the last completed cycle",
			},
		),
		incidentCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "riskpulse_traffic_incidents",
				Help: "Active traffic incidents seen in the last cycle",
			},
		),
		stageLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskpulse_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordCycle records a completed collection cycle.
func (r *Recorder) RecordCycle(status string) {
	r.cyclesTotal.WithLabelValues(status).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCompositeScore records the last composite risk score.
func (r *Recorder) RecordCompositeScore(score float64) {
	r.compositeScore.Set(score)
}

// RecordIncidentCount records the active incident count.
func (r *Recorder) RecordIncidentCount(n int) {
	r.incidentCount.Set(float64(n))
}

// RecordLatency records a pipeline stage's duration in seconds.
func (r *Recorder) RecordLatency(stage string, seconds float64) {
	r.stageLatency.WithLabelValues(stage).Observe(seconds)
}
