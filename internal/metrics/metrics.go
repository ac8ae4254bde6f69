// Package metrics exposes Prometheus counters for the application.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RegistrationsTotal counts submitted membership applications.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sigms",
		Name:      "registrations_total",
		Help:      "Number of membership applications submitted.",
	})

	// TransitionsTotal counts approval-workflow transitions by action.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigms",
		Name:      "membership_transitions_total",
		Help:      "Number of membership status transitions.",
	}, []string{"action"})

	// ScheduleSubmitsTotal counts submitted schedule requests by kind.
	ScheduleSubmitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigms",
		Name:      "schedule_submits_total",
		Help:      "Number of schedule requests submitted.",
	}, []string{"kind"})

	// ScheduleDecisionsTotal counts schedule decisions by action.
	ScheduleDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigms",
		Name:      "schedule_decisions_total",
		Help:      "Number of schedule request decisions.",
	}, []string{"action"})

	// ReportsGeneratedTotal counts generated reports by type.
	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sigms",
		Name:      "reports_generated_total",
		Help:      "Number of reports generated.",
	}, []string{"report"})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
