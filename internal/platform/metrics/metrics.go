package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the matching and claim
// workflow. A nil *Metrics is safe everywhere; recording methods no-op.
type Metrics struct {
	ItemsReported       *prometheus.CounterVec
	MatchesCreated      prometheus.Counter
	DuplicateMatches    prometheus.Counter
	ClaimsCompleted     prometheus.Counter
	ClaimConflicts      prometheus.Counter
	NotificationsQueued prometheus.Counter
	NotificationsFailed prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ItemsReported: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reclaim_items_reported_total",
			Help: "Total item reports accepted, by kind (lost|found).",
		}, []string{"kind"}),
		MatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_matches_created_total",
			Help: "Total matches materialized by the matcher.",
		}),
		DuplicateMatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_duplicate_matches_total",
			Help: "Match creations suppressed by the pair uniqueness constraint.",
		}),
		ClaimsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_claims_completed_total",
			Help: "Total claim transactions committed.",
		}),
		ClaimConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_claim_conflicts_total",
			Help: "Claim attempts rejected because the match was already claimed.",
		}),
		NotificationsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_notifications_queued_total",
			Help: "Notifications accepted for dispatch.",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_notifications_failed_total",
			Help: "Notification dispatch attempts that failed and were dropped.",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reclaim_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) RecordItemReported(kind string) {
	if m == nil {
		return
	}
	m.ItemsReported.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordMatchCreated() {
	if m == nil {
		return
	}
	m.MatchesCreated.Inc()
}

func (m *Metrics) RecordDuplicateMatch() {
	if m == nil {
		return
	}
	m.DuplicateMatches.Inc()
}

func (m *Metrics) RecordClaimCompleted() {
	if m == nil {
		return
	}
	m.ClaimsCompleted.Inc()
}

func (m *Metrics) RecordClaimConflict() {
	if m == nil {
		return
	}
	m.ClaimConflicts.Inc()
}

func (m *Metrics) RecordNotificationQueued() {
	if m == nil {
		return
	}
	m.NotificationsQueued.Inc()
}

func (m *Metrics) RecordNotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationsFailed.Inc()
}

func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
