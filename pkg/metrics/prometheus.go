package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	screensTotal  prometheus.Counter
	stocksScanned prometheus.Counter
	stocksMatched prometheus.Counter
	errorsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockai_provider_fetches_total",
				Help: "Total market data fetches by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		screensTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stockai_screens_total",
				Help: "Total screening runs",
			},
		),
		stocksScanned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stockai_stocks_scanned_total",
				Help: "Total stocks scanned across all screening runs",
			},
		),
		stocksMatched: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stockai_stocks_matched_total",
				Help: "Total stocks that matched screener filters",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockai_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockai_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one provider fetch with its outcome.
func (r *Recorder) RecordFetch(provider, outcome string) {
	r.fetchesTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordScreen records the shape of a finished screening run.
func (r *Recorder) RecordScreen(matched, scanned int) {
	r.screensTotal.Inc()
	r.stocksScanned.Add(float64(scanned))
	r.stocksMatched.Add(float64(matched))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
