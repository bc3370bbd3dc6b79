package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeUploadFailed = "upload_failed"
	OutcomeInsertFailed = "insert_failed"
	OutcomeFailed       = "failed"
)

// Metrics groups the portal's collectors. One instance is registered per
// registry; tests use a fresh prometheus.NewRegistry().
type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	Submissions    *prometheus.CounterVec
	Uploads        *prometheus.CounterVec
	Reconciled     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rihla_submissions_total",
				Help: "Application submissions by service and outcome.",
			},
			[]string{"service", "outcome"},
		),
		Uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rihla_uploads_total",
				Help: "Document uploads by service and outcome.",
			},
			[]string{"service", "outcome"},
		),
		Reconciled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rihla_reconciled_objects_total",
				Help: "Orphaned uploads found by the reconciler, by action.",
			},
			[]string{"folder", "action"},
		),
	}

	for _, c := range []prometheus.Collector{m.Requests, m.RequestLatency, m.Submissions, m.Uploads, m.Reconciled} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NopMetrics returns collectors that are not registered anywhere.
func NopMetrics() *Metrics {
	m, _ := NewMetrics(prometheus.NewRegistry())
	return m
}
