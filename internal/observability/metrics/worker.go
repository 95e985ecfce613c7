package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics tracks the routed-document event feed consumed by the
// dashboard worker.
type WorkerMetrics struct {
	registry *prometheus.Registry

	routedTotal   *prometheus.CounterVec
	criticalTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	routedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docudesk",
			Subsystem: "worker",
			Name:      "documents_routed_total",
			Help:      "Routed-document events consumed, per target department.",
		},
		[]string{"service", "department"},
	)
	criticalTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docudesk",
			Subsystem: "worker",
			Name:      "critical_documents_total",
			Help:      "Routed-document events flagged critical.",
		},
		[]string{"service"},
	)

	registry.MustRegister(routedTotal, criticalTotal)

	return &WorkerMetrics{
		registry:      registry,
		routedTotal:   routedTotal,
		criticalTotal: criticalTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) ObserveRouted(service string, departments []string, critical bool) {
	for _, dept := range departments {
		m.routedTotal.WithLabelValues(service, dept).Inc()
	}
	if critical {
		m.criticalTotal.WithLabelValues(service).Inc()
	}
}
