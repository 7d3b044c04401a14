package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pair outcomes used as the "status" label of PairsProcessed
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	CitiesProcessed  prometheus.Counter
	PairsProcessed   *prometheus.CounterVec
	RecordsCollected prometheus.Counter
	FailuresCount    *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	ExportDuration   *prometheus.HistogramVec
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CitiesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cities_processed_total",
			Help:      "The total number of origin cities processed",
		}),
		PairsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_processed_total",
			Help:      "The total number of city pairs fetched, by outcome",
		}, []string{"status"}),
		RecordsCollected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_collected_total",
			Help:      "The total number of flight records collected",
		}),
		FailuresCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "The total number of failed units of work",
		}, []string{"kind"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time of a full crawl",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		ExportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time taken to write the table to a sink",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sink"}),
	}
}
