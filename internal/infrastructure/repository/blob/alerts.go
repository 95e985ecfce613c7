package blob

import (
	"context"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

type AlertRepository struct {
	kv ports.KeyValueStore
}

func NewAlertRepository(kv ports.KeyValueStore) *AlertRepository {
	return &AlertRepository{kv: kv}
}

func (r *AlertRepository) GetAll(ctx context.Context) ([]domain.AlertRecord, error) {
	return readCollection[domain.AlertRecord](ctx, r.kv, keyAlerts)
}

// Create inserts at the front so the collection stays most-recent-first.
func (r *AlertRepository) Create(ctx context.Context, alert domain.AlertRecord) error {
	alerts, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	alerts = append([]domain.AlertRecord{alert}, alerts...)
	return writeCollection(ctx, r.kv, keyAlerts, alerts)
}

// MarkRead flags the alert as read. A missing id is a silent no-op.
func (r *AlertRepository) MarkRead(ctx context.Context, id string) error {
	alerts, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range alerts {
		if alerts[i].ID != id {
			continue
		}
		alerts[i].IsRead = true
		return writeCollection(ctx, r.kv, keyAlerts, alerts)
	}
	return nil
}
