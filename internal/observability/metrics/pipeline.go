package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics covers the intake pipeline: submissions, routing fan-out,
// and outbound notifications.
type PipelineMetrics struct {
	submissionsTotal    *prometheus.CounterVec
	submissionDuration  *prometheus.HistogramVec
	submissionsInFlight prometheus.Gauge
	alertsCreated       *prometheus.CounterVec
	notificationsSent   prometheus.Counter
}

func NewPipelineMetrics(service string, reg prometheus.Registerer) *PipelineMetrics {
	submissionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docudesk",
			Subsystem: "pipeline",
			Name:      "submissions_total",
			Help:      "Total document submissions by outcome.",
		},
		[]string{"service", "status"},
	)
	submissionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docudesk",
			Subsystem: "pipeline",
			Name:      "submission_duration_seconds",
			Help:      "Submission pipeline duration in seconds by outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	submissionsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docudesk",
			Subsystem: "pipeline",
			Name:      "submissions_in_flight",
			Help:      "Number of submissions currently being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	alertsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docudesk",
			Subsystem: "pipeline",
			Name:      "alerts_created_total",
			Help:      "Alert records created per routed department.",
		},
		[]string{"service", "department"},
	)
	notificationsSent := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "docudesk",
			Subsystem: "pipeline",
			Name:      "notifications_sent_total",
			Help:      "Critical notifications dispatched.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	reg.MustRegister(submissionsTotal, submissionDuration, submissionsInFlight, alertsCreated, notificationsSent)

	return &PipelineMetrics{
		submissionsTotal:    submissionsTotal,
		submissionDuration:  submissionDuration,
		submissionsInFlight: submissionsInFlight,
		alertsCreated:       alertsCreated,
		notificationsSent:   notificationsSent,
	}
}

func (m *PipelineMetrics) StartSubmission() {
	m.submissionsInFlight.Inc()
}

// FinishSubmission decrements the in-flight gauge on every exit path.
func (m *PipelineMetrics) FinishSubmission(service string, duration time.Duration, err error) {
	m.submissionsInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.submissionsTotal.WithLabelValues(service, status).Inc()
	m.submissionDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) AlertCreated(service, department string) {
	m.alertsCreated.WithLabelValues(service, department).Inc()
}

func (m *PipelineMetrics) NotificationSent() {
	m.notificationsSent.Inc()
}
