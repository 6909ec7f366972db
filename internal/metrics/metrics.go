package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// JobMetrics instruments the background tier maintenance jobs.
type JobMetrics struct {
	runs             *prometheus.CounterVec
	errors           *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	customerFailures prometheus.Counter
}

func NewJobMetrics(reg *prometheus.Registry) *JobMetrics {
	m := &JobMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_job_runs_total",
			Help: "Background job executions.",
		}, []string{"job"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_job_errors_total",
			Help: "Background job executions that returned an error.",
		}, []string{"job"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loyalty_job_duration_seconds",
			Help:    "Background job duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		customerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loyalty_recalculation_customer_failures_total",
			Help: "Customers that failed inside a batch recalculation.",
		}),
	}
	reg.MustRegister(m.runs, m.errors, m.duration, m.customerFailures)
	return m
}

func (m *JobMetrics) IncJobRun(job string) {
	m.runs.WithLabelValues(job).Inc()
}

func (m *JobMetrics) IncJobError(job string) {
	m.errors.WithLabelValues(job).Inc()
}

func (m *JobMetrics) ObserveJobDuration(job string, d time.Duration) {
	m.duration.WithLabelValues(job).Observe(d.Seconds())
}

func (m *JobMetrics) AddCustomerFailures(n int) {
	m.customerFailures.Add(float64(n))
}

var Module = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		NewJobMetrics,
		NewHTTPMetrics,
	),
)
