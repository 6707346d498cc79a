package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for the data layer.
type Metrics struct {
	registry *prometheus.Registry

	JobRuns     *prometheus.CounterVec
	JobFailures *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec
	PurgedRows  prometheus.Counter

	QuotaChecks prometheus.Counter
	QuotaDenied prometheus.Counter
}

// New builds and registers all collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khuchi",
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Number of scheduler job executions.",
		}, []string{"job"}),
		JobFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khuchi",
			Subsystem: "scheduler",
			Name:      "job_failures_total",
			Help:      "Number of failed scheduler job executions.",
		}, []string{"job"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "khuchi",
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduler job execution duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		PurgedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khuchi",
			Subsystem: "usage",
			Name:      "purged_rows_total",
			Help:      "Usage log rows removed by the cleanup job.",
		}),
		QuotaChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khuchi",
			Subsystem: "quota",
			Name:      "checks_total",
			Help:      "Daily quota admission checks.",
		}),
		QuotaDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khuchi",
			Subsystem: "quota",
			Name:      "denied_total",
			Help:      "Messages rejected by the daily quota.",
		}),
	}

	registry.MustRegister(
		m.JobRuns,
		m.JobFailures,
		m.JobDuration,
		m.PurgedRows,
		m.QuotaChecks,
		m.QuotaDenied,
	)

	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
