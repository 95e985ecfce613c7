package bootstrap

import (
	"context"
	"testing"

	"github.com/arjunkps/docudesk/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		StoreBackend:      "localfs",
		StorePath:         t.TempDir(),
		NATSURL:           "nats://127.0.0.1:4222",
		NATSSubject:       "documents.routed",
		WhatsAppRecipient: "+919876543210",
		DashboardURL:      "http://localhost:8080/dashboard",
		MaxUploadBytes:    1 << 20,
		DefaultUploader:   "system",
	}
}

// The NATS connection retries in the background when no server is up, so the
// full API graph can be assembled offline.
func TestNewWiresAPIApp(t *testing.T) {
	app, err := New(context.Background(), testConfig(t), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if app.Handler == nil {
		t.Fatalf("expected assembled http handler")
	}
	if app.Queue == nil {
		t.Fatalf("expected connected event bus")
	}
}

func TestNewRejectsUnknownStoreBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = "redis"

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown store backend")
	}
}

func TestNewWorkerWiresQueueAndMetrics(t *testing.T) {
	worker, err := NewWorker(testConfig(t), nil)
	if err != nil {
		t.Fatalf("NewWorker() error = %v", err)
	}
	defer worker.Close()

	if worker.Queue == nil || worker.Metrics == nil {
		t.Fatalf("expected queue and metrics wired, got %+v", worker)
	}
}
