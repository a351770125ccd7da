package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskpulse_reminders_fired_total",
		Help: "Reminders delivered to the notification sink.",
	})

	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskpulse_notifications_dropped_total",
		Help: "Reminders dropped because the notification queue was full.",
	})

	OccurrencesSpawned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskpulse_occurrences_spawned_total",
		Help: "Next occurrences created by completing recurring tasks.",
	})
)
