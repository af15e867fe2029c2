package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_reconcile_ticks_total",
			Help: "Total number of birthday reconciliation ticks by result",
		},
		[]string{"result"},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "birthday_reconcile_tick_duration_seconds",
			Help:    "Duration of birthday reconciliation ticks",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "birthday_notifications_sent_total",
			Help: "Total number of birthday notifications delivered and recorded",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_notification_failures_total",
			Help: "Total number of per-birthday failures during a tick by stage",
		},
		[]string{"stage"},
	)

	MissingBindings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "birthday_missing_bindings_total",
			Help: "Total number of due birthdays skipped because their chat has no binding",
		},
	)

	RegistrationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "birthday_registration_requests_total",
			Help: "Total number of registration service requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)
