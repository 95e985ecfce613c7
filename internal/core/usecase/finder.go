package usecase

import (
	"context"
	"strings"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

// FindDocumentsUseCase is the read model behind the search page and the
// dashboard counters.
type FindDocumentsUseCase struct {
	documents ports.DocumentRepository
	alerts    ports.AlertRepository
}

func NewFindDocumentsUseCase(documents ports.DocumentRepository, alerts ports.AlertRepository) *FindDocumentsUseCase {
	return &FindDocumentsUseCase{documents: documents, alerts: alerts}
}

// Search combines the repository's text match (title, tags, extracted text,
// summary) with a department-name match, then applies the exact-match
// filters. Empty filter fields match everything.
func (uc *FindDocumentsUseCase) Search(ctx context.Context, query domain.SearchQuery) ([]domain.DocumentRecord, error) {
	docs, err := uc.candidates(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	out := []domain.DocumentRecord{}
	for _, doc := range docs {
		if matchesFilters(doc, query) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (uc *FindDocumentsUseCase) candidates(ctx context.Context, text string) ([]domain.DocumentRecord, error) {
	if text == "" {
		return uc.documents.GetAll(ctx)
	}

	matched, err := uc.documents.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(matched))
	for _, doc := range matched {
		seen[doc.ID] = struct{}{}
	}

	// The search page also matches the query against the owning department.
	all, err := uc.documents.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(text)
	for _, doc := range all {
		if _, ok := seen[doc.ID]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(doc.Department), lower) {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

func matchesFilters(doc domain.DocumentRecord, q domain.SearchQuery) bool {
	if q.Department != "" && doc.Department != q.Department {
		return false
	}
	if q.Type != "" && doc.Type != q.Type {
		return false
	}
	if q.Language != "" && !strings.EqualFold(string(doc.Language), q.Language) {
		return false
	}
	if q.Status != "" && !strings.EqualFold(string(doc.Status), q.Status) {
		return false
	}
	return true
}

// Stats computes the dashboard counters.
func (uc *FindDocumentsUseCase) Stats(ctx context.Context) (domain.DashboardStats, error) {
	docs, err := uc.documents.GetAll(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	alerts, err := uc.alerts.GetAll(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{TotalDocuments: len(docs)}
	for _, doc := range docs {
		if doc.Summary() != "" {
			stats.SummariesReady++
		}
		if doc.Status == domain.StatusProcessing {
			stats.PendingReviews++
		}
	}
	for _, alert := range alerts {
		if !alert.IsRead && alert.Type == "compliance" {
			stats.ComplianceIssues++
		}
	}
	return stats, nil
}
