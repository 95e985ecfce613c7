package blob

import (
	"context"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

type ComplianceRepository struct {
	kv ports.KeyValueStore
}

func NewComplianceRepository(kv ports.KeyValueStore) *ComplianceRepository {
	return &ComplianceRepository{kv: kv}
}

func (r *ComplianceRepository) GetAll(ctx context.Context) ([]domain.ComplianceItem, error) {
	return readCollection[domain.ComplianceItem](ctx, r.kv, keyCompliance)
}

// Create inserts at the front so the collection stays most-recent-first.
func (r *ComplianceRepository) Create(ctx context.Context, item domain.ComplianceItem) error {
	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	items = append([]domain.ComplianceItem{item}, items...)
	return writeCollection(ctx, r.kv, keyCompliance, items)
}
