// Package blob implements the collection repositories over a key-value
// store. Each collection is one JSON array under its own key; every mutation
// reads the whole collection, changes it in memory, and writes it back.
// Interleaved writers can lose updates (last write wins); an accepted
// limitation of the storage model.
package blob

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arjunkps/docudesk/internal/core/ports"
)

const (
	keyDocuments     = "docudesk_documents"
	keyAlerts        = "docudesk_alerts"
	keyCompliance    = "docudesk_compliance"
	keyNotifications = "docudesk_notifications"
)

// readCollection tolerates an absent key and treats it as an empty array.
func readCollection[T any](ctx context.Context, kv ports.KeyValueStore, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return out, nil
}

func errIDMissing(id string) error {
	return fmt.Errorf("no record with id %q", id)
}

func writeCollection[T any](ctx context.Context, kv ports.KeyValueStore, key string, records []T) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}
