package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansRecorded counts scan events by outcome: recorded, rejected
	// (unknown/inactive/archived campaign) or failed (write error).
	ScansRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_scans_total",
			Help: "Scan requests by outcome",
		},
		[]string{"outcome"},
	)

	// AnalyticsDuration tracks aggregator latency.
	AnalyticsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qr_analytics_duration_seconds",
			Help:    "Duration of campaign analytics computation in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"status"},
	)

	// CampaignsCreated counts campaign registrations.
	CampaignsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_campaigns_created_total",
			Help: "Campaigns created since process start",
		},
	)
)

func RecordScanOutcome(outcome string) {
	ScansRecorded.WithLabelValues(outcome).Inc()
}

func RecordAnalyticsDuration(status string, seconds float64) {
	AnalyticsDuration.WithLabelValues(status).Observe(seconds)
}
