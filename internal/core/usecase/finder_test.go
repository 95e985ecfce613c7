package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

type finderDocsFake struct {
	docs []domain.DocumentRecord
}

func (f *finderDocsFake) GetAll(context.Context) ([]domain.DocumentRecord, error) {
	return f.docs, nil
}

func (f *finderDocsFake) Save(context.Context, domain.DocumentRecord) error { return nil }

func (f *finderDocsFake) Update(context.Context, string, domain.DocumentPatch) error { return nil }

func (f *finderDocsFake) GetByID(context.Context, string) (*domain.DocumentRecord, error) {
	return nil, domain.ErrNotFound
}

// Search mirrors the repository contract: case-insensitive title match only,
// enough for exercising the candidate merge.
func (f *finderDocsFake) Search(_ context.Context, query string) ([]domain.DocumentRecord, error) {
	lower := strings.ToLower(query)
	out := []domain.DocumentRecord{}
	for _, doc := range f.docs {
		if strings.Contains(strings.ToLower(doc.Title), lower) {
			out = append(out, doc)
		}
	}
	return out, nil
}

type finderAlertsFake struct {
	alerts []domain.AlertRecord
}

func (f *finderAlertsFake) GetAll(context.Context) ([]domain.AlertRecord, error) {
	return f.alerts, nil
}

func (f *finderAlertsFake) Create(context.Context, domain.AlertRecord) error { return nil }

func (f *finderAlertsFake) MarkRead(context.Context, string) error { return nil }

func finderFixtureDocs() []domain.DocumentRecord {
	return []domain.DocumentRecord{
		{ID: "d1", Title: "Track Maintenance", Department: "Engineering", Type: "Technical Manual", Language: domain.LanguageEnglish, Status: domain.StatusReady},
		{ID: "d2", Title: "Budget 2025", Department: "Finance", Type: "Financial Report", Language: domain.LanguageEnglish, Status: domain.StatusProcessing},
		{ID: "d3", Title: "Staff Onboarding", Department: "Human Resources", Type: "Training Material", Language: domain.LanguageMalayalam, Status: domain.StatusReady},
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	uc := NewFindDocumentsUseCase(&finderDocsFake{docs: finderFixtureDocs()}, &finderAlertsFake{})

	got, err := uc.Search(context.Background(), domain.SearchQuery{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all documents, got %d", len(got))
	}
}

func TestSearchMatchesDepartmentName(t *testing.T) {
	uc := NewFindDocumentsUseCase(&finderDocsFake{docs: finderFixtureDocs()}, &finderAlertsFake{})

	got, err := uc.Search(context.Background(), domain.SearchQuery{Text: "finance"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "d2" {
		t.Fatalf("Search() = %+v", got)
	}
}

func TestSearchMergesTextAndDepartmentMatchesWithoutDuplicates(t *testing.T) {
	docs := finderFixtureDocs()
	// d1 matches both the title and the department for "engineering".
	docs[0].Title = "Engineering Handbook"
	uc := NewFindDocumentsUseCase(&finderDocsFake{docs: docs}, &finderAlertsFake{})

	got, err := uc.Search(context.Background(), domain.SearchQuery{Text: "engineering"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("expected single deduplicated match, got %+v", got)
	}
}

func TestSearchAppliesFilters(t *testing.T) {
	uc := NewFindDocumentsUseCase(&finderDocsFake{docs: finderFixtureDocs()}, &finderAlertsFake{})

	cases := []struct {
		name  string
		query domain.SearchQuery
		want  []string
	}{
		{"department", domain.SearchQuery{Department: "Finance"}, []string{"d2"}},
		{"type", domain.SearchQuery{Type: "Training Material"}, []string{"d3"}},
		{"language case-insensitive", domain.SearchQuery{Language: "MALAYALAM"}, []string{"d3"}},
		{"status", domain.SearchQuery{Status: "processing"}, []string{"d2"}},
		{"no match", domain.SearchQuery{Department: "Finance", Status: "ready"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.Search(context.Background(), tc.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d results, want %d: %+v", len(got), len(tc.want), got)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("result %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	docs := finderFixtureDocs()
	docs[0].Analysis = &domain.AnalysisResult{Summary: "ready summary"}
	alerts := []domain.AlertRecord{
		{ID: "a1", Type: "compliance", IsRead: false},
		{ID: "a2", Type: "compliance", IsRead: true},
		{ID: "a3", Type: "critical_document", Priority: domain.PriorityCritical, IsRead: false},
	}
	uc := NewFindDocumentsUseCase(&finderDocsFake{docs: docs}, &finderAlertsFake{alerts: alerts})

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalDocuments != 3 {
		t.Fatalf("total = %d", stats.TotalDocuments)
	}
	if stats.SummariesReady != 1 {
		t.Fatalf("summaries ready = %d", stats.SummariesReady)
	}
	if stats.PendingReviews != 1 {
		t.Fatalf("pending reviews = %d", stats.PendingReviews)
	}
	if stats.ComplianceIssues != 1 {
		t.Fatalf("compliance issues = %d", stats.ComplianceIssues)
	}
}
