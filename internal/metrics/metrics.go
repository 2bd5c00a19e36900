package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bootstrapSync = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "bootstrap_sync_total",
			Help:      "Bootstrap pulls by collection and outcome.",
		},
		[]string{"collection", "outcome"},
	)

	conflictChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "conflict_check_total",
			Help:      "Schedule checks by verdict source.",
		},
		[]string{"source"},
	)

	conflictsFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "conflicts_found_total",
			Help:      "Conflicts detected by rule.",
		},
		[]string{"rule"},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "login_total",
			Help:      "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	shiftsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "shift_saved_total",
			Help:      "Shift writes by sync state.",
		},
		[]string{"sync"},
	)

	dayOffSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "dayoff_submitted_total",
			Help:      "Day-off submissions by resulting status.",
		},
		[]string{"status"},
	)

	reconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "reconciled_total",
			Help:      "Pending-sync records pushed by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	scheduleEmails = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jiscare",
			Name:      "schedule_emails_total",
			Help:      "Weekly schedule emails by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bootstrapSync, conflictChecks, conflictsFound,
			logins, shiftsSaved, dayOffSubmitted, reconciled,
			scheduleEmails,
		)
	})
}

func IncBootstrapSync(collection, outcome string) {
	bootstrapSync.WithLabelValues(collection, outcome).Inc()
}

func IncConflictCheck(source string) {
	conflictChecks.WithLabelValues(source).Inc()
}

func IncConflictFound(rule string) {
	conflictsFound.WithLabelValues(rule).Inc()
}

func IncLogin(outcome string) {
	logins.WithLabelValues(outcome).Inc()
}

func IncShiftSaved(sync string) {
	shiftsSaved.WithLabelValues(sync).Inc()
}

func IncDayOffSubmitted(status string) {
	dayOffSubmitted.WithLabelValues(status).Inc()
}

func IncReconciled(kind, outcome string) {
	reconciled.WithLabelValues(kind, outcome).Inc()
}

func IncScheduleEmail(outcome string) {
	scheduleEmails.WithLabelValues(outcome).Inc()
}
