package ports

import (
	"context"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

// DocumentSubmitter is the inbound contract for upload orchestration.
type DocumentSubmitter interface {
	Submit(ctx context.Context, input domain.SubmissionInput) (*domain.SubmissionResult, error)
}

// DocumentFinder is the inbound read model over stored documents.
type DocumentFinder interface {
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.DocumentRecord, error)
	Stats(ctx context.Context) (domain.DashboardStats, error)
}
