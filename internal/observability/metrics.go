// Package observability exposes the service's Prometheus collectors.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "activity",
		Name:      "rows_created_total",
		Help:      "Activity rows persisted, labelled by type and whether they counted toward a goal.",
	}, []string{"type", "counted"})
	goalsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "goal",
		Name:      "completions_total",
		Help:      "Goals whose recomputation flipped them to completed.",
	}, []string{"category"})
	zoneReassignments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "zone",
		Name:      "reassigned_properties_total",
		Help:      "Properties processed by the zone re-assignment job, by outcome.",
	}, []string{"outcome"})
	lastReassignRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "crm",
		Subsystem: "zone",
		Name:      "last_reassign_timestamp_seconds",
		Help:      "Unix timestamp of the last completed zone re-assignment run.",
	})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crm",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "code"})
)

func init() {
	prometheus.MustRegister(activitiesLogged, goalsCompleted, zoneReassignments, lastReassignRun, httpDuration)
}

// RecordActivityCreated counts a persisted activity row.
func RecordActivityCreated(activityType string, counted bool) {
	activitiesLogged.WithLabelValues(activityType, strconv.FormatBool(counted)).Inc()
}

// RecordGoalCompleted counts a goal transitioning to completed.
func RecordGoalCompleted(category string) {
	goalsCompleted.WithLabelValues(category).Inc()
}

// RecordZoneReassignment counts properties handled by one job run.
func RecordZoneReassignment(assigned, cleared, unchanged int, finished time.Time) {
	zoneReassignments.WithLabelValues("assigned").Add(float64(assigned))
	zoneReassignments.WithLabelValues("cleared").Add(float64(cleared))
	zoneReassignments.WithLabelValues("unchanged").Add(float64(unchanged))
	if !finished.IsZero() {
		lastReassignRun.Set(float64(finished.Unix()))
	}
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method string, code int, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
