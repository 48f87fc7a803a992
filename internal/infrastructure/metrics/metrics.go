package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "chat_api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parley",
			Subsystem: "chat_api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SharesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "chat_api",
			Name:      "shares_created_total",
			Help:      "Total number of thread shares created",
		},
	)

	PublicShareRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "chat_api",
			Name:      "public_share_requests_total",
			Help:      "Total number of public share lookups",
		},
		[]string{"outcome"},
	)

	SharesRevokedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "chat_api",
			Name:      "shares_revoked_total",
			Help:      "Total number of expired shares revoked by the cron job",
		},
	)
)

// RecordShareCreated counts a newly created share.
func RecordShareCreated() {
	SharesTotal.Inc()
}

// RecordPublicShareRequest counts a public share lookup by outcome
// (resolved, expired, forbidden, unauthorized, not_found).
func RecordPublicShareRequest(outcome string) {
	PublicShareRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordSharesRevoked counts shares revoked by the scheduled job.
func RecordSharesRevoked(n int64) {
	SharesRevokedTotal.Add(float64(n))
}
