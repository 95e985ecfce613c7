package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjunkps/docudesk/internal/bootstrap"
	"github.com/arjunkps/docudesk/internal/config"
	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("docudesk-worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := bootstrap.NewWorker(cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer worker.Close()

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: worker.Metrics.Handler(),
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()
	defer func() { _ = metricsServer.Close() }()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = worker.Queue.SubscribeDocumentRouted(ctx, func(_ context.Context, event domain.RoutedEvent) error {
		worker.Metrics.ObserveRouted("docudesk-worker", event.Departments, event.Critical)
		logger.Info("document_routed",
			"document_id", event.DocumentID,
			"departments", event.Departments,
			"critical", event.Critical,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
