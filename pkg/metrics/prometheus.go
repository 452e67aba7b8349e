package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DisruptionsProcessed prometheus.Counter
	RecoveriesByStatus   *prometheus.CounterVec
	AdvisorFallbacks     prometheus.Counter
	NoticesSent          prometheus.Counter
	ResolutionTime       prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		DisruptionsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disruptions_processed_total",
			Help:      "The total number of processed disruption events",
		}),
		RecoveriesByStatus: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recoveries_total",
			Help:      "The total number of recovery results by final status",
		}, []string{"status"}),
		AdvisorFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisor_fallbacks_total",
			Help:      "The total number of advisor calls answered with the fallback policy",
		}),
		NoticesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_sent_total",
			Help:      "The total number of crew notices sent",
		}),
		ResolutionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "disruption_resolution_time_seconds",
			Help:      "Time taken to resolve a disruption",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
