package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/arjunkps/docudesk/internal/config"
	"github.com/arjunkps/docudesk/internal/core/ports"
	natsqueue "github.com/arjunkps/docudesk/internal/infrastructure/queue/nats"
	"github.com/arjunkps/docudesk/internal/infrastructure/resilience"
	"github.com/arjunkps/docudesk/internal/observability/metrics"
)

// Worker is the routing-metrics consumer. It only needs the queue and its
// own metrics registry, not the full API wiring.
type Worker struct {
	Queue   ports.EventBus
	Metrics *metrics.WorkerMetrics

	queue *natsqueue.Queue
}

func NewWorker(cfg config.Config, logger *slog.Logger) (*Worker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Worker{
		Queue:   queue,
		Metrics: metrics.NewWorkerMetrics("docudesk-worker"),
		queue:   queue,
	}, nil
}

func (w *Worker) Close() {
	w.queue.Close()
}
