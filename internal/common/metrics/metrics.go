package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurnsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_processed_total",
			Help: "Total number of dialog turns handled by the orchestrator",
		},
		[]string{"action"},
	)

	SlotValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_validation_failures_total",
			Help: "Total number of slot values rejected by the validator",
		},
		[]string{"slot"},
	)

	RequestsEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_enqueued_total",
			Help: "Total number of validated requests sent to the queue",
		},
	)

	FulfillmentRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_runs_total",
			Help: "Total number of fulfillment poller runs by outcome",
		},
		[]string{"outcome"},
	)

	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of recommendation emails sent",
		},
	)

	DuplicateRequestsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_requests_skipped_total",
			Help: "Total number of redelivered requests suppressed by the dedup store",
		},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "restaurant_search_duration_seconds",
			Help: "Duration of search index queries in seconds",
		},
	)
)
