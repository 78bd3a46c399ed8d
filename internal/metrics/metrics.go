// Package metrics provides Prometheus metrics for newspulse.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts news API calls by HTTP status ("error" when no response arrived).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newspulse",
			Name:      "upstream_requests_total",
			Help:      "Total number of news API requests",
		},
		[]string{"status"},
	)

	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newspulse",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of news API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ArticlesIngested counts stored rows by classification.
	ArticlesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newspulse",
			Name:      "articles_ingested_total",
			Help:      "Total number of articles stored",
		},
		[]string{"category", "sentiment"},
	)

	ArticlesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newspulse",
			Name:      "articles_skipped_total",
			Help:      "Total number of articles dropped before storage",
		},
		[]string{"reason"},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newspulse",
			Name:      "errors_total",
			Help:      "Total number of errors",
		},
		[]string{"operation"},
	)
)

func RecordUpstream(statusCode int, seconds float64) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	UpstreamRequests.WithLabelValues(status).Inc()
	UpstreamDuration.Observe(seconds)
}

func RecordIngested(category, sentiment string) {
	ArticlesIngested.WithLabelValues(category, sentiment).Inc()
}

func RecordSkipped(reason string) {
	ArticlesSkipped.WithLabelValues(reason).Inc()
}

func RecordError(operation string) {
	ErrorsTotal.WithLabelValues(operation).Inc()
}
