package nats

import (
	"errors"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/infrastructure/resilience"
)

func TestNewWithOptionsKeepsResilienceExecutor(t *testing.T) {
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	// No server is listening; the connection enters its reconnect loop.
	queue, err := NewWithOptions("nats://127.0.0.1:4222", "documents.routed", Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}
	defer queue.Close()

	if queue.executor != executor {
		t.Fatalf("expected publish path to carry the resilience executor")
	}
}

func TestNewLeavesExecutorUnset(t *testing.T) {
	queue, err := New("nats://127.0.0.1:4222", "documents.routed")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer queue.Close()

	if queue.executor != nil {
		t.Fatalf("plain constructor should not attach an executor")
	}
}

func TestClassifyNATSError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		retryable     bool
		recordFailure bool
	}{
		{"no servers", nats.ErrNoServers, true, true},
		{"timeout", nats.ErrTimeout, true, true},
		{"connection closed", nats.ErrConnectionClosed, true, true},
		{"encode failure", errors.New("encode routed event"), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class := classifyNATSError(tc.err)
			if class.Retryable != tc.retryable || class.RecordFailure != tc.recordFailure {
				t.Fatalf("classifyNATSError(%v) = %+v", tc.err, class)
			}
		})
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	wrapped := wrapTemporaryIfNeeded(nats.ErrTimeout)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("expected retryable error wrapped as temporary, got %v", wrapped)
	}

	permanent := errors.New("bad payload")
	if got := wrapTemporaryIfNeeded(permanent); !errors.Is(got, permanent) || domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("permanent error should pass through unwrapped, got %v", got)
	}

	if wrapTemporaryIfNeeded(nil) != nil {
		t.Fatalf("nil stays nil")
	}
}
