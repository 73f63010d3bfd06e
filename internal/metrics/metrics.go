package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trainslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SchedulesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trainslot_schedules_created_total",
			Help: "Total number of availability schedules created",
		},
	)

	ScheduleRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainslot_schedule_rejections_total",
			Help: "Schedule creation rejections by error kind",
		},
		[]string{"kind"},
	)

	AdmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trainslot_admissions_total",
			Help: "Booking admission outcomes by result",
		},
		[]string{"result"},
	)

	AdmissionLockWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trainslot_admission_lock_wait_seconds",
			Help:    "Time spent waiting for the per-client admission lock",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 3, 5},
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordScheduleCreated() {
	SchedulesCreatedTotal.Inc()
}

func RecordScheduleRejection(kind string) {
	ScheduleRejectionsTotal.WithLabelValues(kind).Inc()
}

// RecordAdmission records a booking admission outcome; result is "committed"
// or the error kind of the rejection.
func RecordAdmission(result string) {
	AdmissionsTotal.WithLabelValues(result).Inc()
}

func RecordLockWait(seconds float64) {
	AdmissionLockWait.Observe(seconds)
}
