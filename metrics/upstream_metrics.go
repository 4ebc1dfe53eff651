package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type upstreamCollector struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	Exports  *prometheus.CounterVec
}

var (
	globalCollector *upstreamCollector
	collectorOnce   sync.Once
)

func getCollector() *upstreamCollector {
	collectorOnce.Do(func() {
		globalCollector = &upstreamCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathertrack_upstream_requests_total",
					Help: "The total number of upstream API requests by provider and outcome",
				},
				[]string{"provider", "outcome"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weathertrack_upstream_duration_seconds",
					Help:    "Upstream API request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
			Exports: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weathertrack_exports_total",
					Help: "The total number of export documents generated by format",
				},
				[]string{"format"},
			),
		}
	})
	return globalCollector
}

// ObserveUpstream records one upstream API call with its duration and outcome
func ObserveUpstream(provider string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	c := getCollector()
	c.Requests.WithLabelValues(provider, outcome).Inc()
	c.Latency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// RecordExport counts one generated export document
func RecordExport(format string) {
	getCollector().Exports.WithLabelValues(format).Inc()
}
