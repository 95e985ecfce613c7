package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpadapter "github.com/arjunkps/docudesk/internal/adapters/http"
	"github.com/arjunkps/docudesk/internal/config"
	"github.com/arjunkps/docudesk/internal/core/ports"
	"github.com/arjunkps/docudesk/internal/core/usecase"
	"github.com/arjunkps/docudesk/internal/infrastructure/classify"
	"github.com/arjunkps/docudesk/internal/infrastructure/extract"
	"github.com/arjunkps/docudesk/internal/infrastructure/kvstore/localfs"
	kvpostgres "github.com/arjunkps/docudesk/internal/infrastructure/kvstore/postgres"
	"github.com/arjunkps/docudesk/internal/infrastructure/notify/whatsapp"
	"github.com/arjunkps/docudesk/internal/infrastructure/ocr/tessd"
	natsqueue "github.com/arjunkps/docudesk/internal/infrastructure/queue/nats"
	"github.com/arjunkps/docudesk/internal/infrastructure/repository/blob"
	"github.com/arjunkps/docudesk/internal/infrastructure/resilience"
	"github.com/arjunkps/docudesk/internal/infrastructure/validate"
	"github.com/arjunkps/docudesk/internal/observability/metrics"
)

// App holds the assembled API service: the HTTP handler plus everything that
// needs an orderly shutdown.
type App struct {
	Handler http.Handler
	Queue   ports.EventBus

	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	kv, err := newKeyValueStore(ctx, cfg, app)
	if err != nil {
		return nil, err
	}

	documents := blob.NewDocumentRepository(kv)
	alerts := blob.NewAlertRepository(kv)
	compliance := blob.NewComplianceRepository(kv)
	history := blob.NewNotificationHistory(kv)

	taxonomy, err := classify.LoadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	analyzer := classify.NewClassifier(taxonomy)

	validator, err := validate.NewMetadataValidator()
	if err != nil {
		return nil, fmt.Errorf("build metadata validator: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	var ocrEngine ports.OCREngine = tessd.Noop{}
	if cfg.OCRURL != "" {
		ocrEngine = tessd.New(cfg.OCRURL, cfg.OCRLanguage,
			tessd.WithTimeout(time.Duration(cfg.OCRTimeoutSeconds)*time.Second),
			tessd.WithResilience(executor))
	}
	extractor := extract.NewExtractor(ocrEngine, logger)

	notifier := whatsapp.NewNotifier(
		cfg.WhatsAppRecipient,
		whatsapp.NewHTTPOpener(10*time.Second),
		history,
		logger,
	)

	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	app.closers = append(app.closers, queue.Close)
	app.Queue = queue

	submitUC := usecase.NewSubmitDocumentUseCase(
		validator,
		extractor,
		analyzer,
		documents,
		alerts,
		compliance,
		notifier,
		queue,
		usecase.SubmitSettings{
			MaxUploadBytes: cfg.MaxUploadBytes,
			UploadedBy:     cfg.DefaultUploader,
			DashboardURL:   cfg.DashboardURL,
		},
		logger,
	)
	finderUC := usecase.NewFindDocumentsUseCase(documents, alerts)

	httpMetrics := metrics.NewHTTPServerMetrics("docudesk-api")
	pipelineMetrics := metrics.NewPipelineMetrics("docudesk-api", httpMetrics.Registry())

	router := httpadapter.NewRouter(
		cfg,
		logger,
		submitUC,
		finderUC,
		documents,
		alerts,
		compliance,
		history,
		httpMetrics,
		pipelineMetrics,
	)
	app.Handler = router.Handler()
	return app, nil
}

func newKeyValueStore(ctx context.Context, cfg config.Config, app *App) (ports.KeyValueStore, error) {
	switch cfg.StoreBackend {
	case "postgres":
		db, err := kvpostgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		store := kvpostgres.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	case "localfs":
		store, err := localfs.New(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
