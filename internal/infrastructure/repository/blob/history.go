package blob

import (
	"context"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

// historyCap bounds the notification audit trail to the most recent entries.
const historyCap = 50

type NotificationHistory struct {
	kv ports.KeyValueStore
}

func NewNotificationHistory(kv ports.KeyValueStore) *NotificationHistory {
	return &NotificationHistory{kv: kv}
}

func (r *NotificationHistory) List(ctx context.Context) ([]domain.NotificationRecord, error) {
	return readCollection[domain.NotificationRecord](ctx, r.kv, keyNotifications)
}

// Append prepends the record and drops anything beyond the cap.
func (r *NotificationHistory) Append(ctx context.Context, rec domain.NotificationRecord) error {
	records, err := r.List(ctx)
	if err != nil {
		return err
	}
	records = append([]domain.NotificationRecord{rec}, records...)
	if len(records) > historyCap {
		records = records[:historyCap]
	}
	return writeCollection(ctx, r.kv, keyNotifications, records)
}
