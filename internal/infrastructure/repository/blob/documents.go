package blob

import (
	"context"
	"strings"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

type DocumentRepository struct {
	kv ports.KeyValueStore
}

func NewDocumentRepository(kv ports.KeyValueStore) *DocumentRepository {
	return &DocumentRepository{kv: kv}
}

func (r *DocumentRepository) GetAll(ctx context.Context) ([]domain.DocumentRecord, error) {
	return readCollection[domain.DocumentRecord](ctx, r.kv, keyDocuments)
}

func (r *DocumentRepository) Save(ctx context.Context, rec domain.DocumentRecord) error {
	docs, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	docs = append(docs, rec)
	return writeCollection(ctx, r.kv, keyDocuments, docs)
}

// Update applies the patch to the record with the given id. A missing id is
// a silent no-op.
func (r *DocumentRepository) Update(ctx context.Context, id string, patch domain.DocumentPatch) error {
	docs, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		applyPatch(&docs[i], patch)
		return writeCollection(ctx, r.kv, keyDocuments, docs)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	docs, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			doc := docs[i]
			return &doc, nil
		}
	}
	return nil, domain.WrapError(domain.ErrNotFound, "get document", errIDMissing(id))
}

// Search matches the query case-insensitively against title, tags,
// extracted text, and analysis summary.
func (r *DocumentRepository) Search(ctx context.Context, query string) ([]domain.DocumentRecord, error) {
	docs, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	out := []domain.DocumentRecord{}
	for _, doc := range docs {
		if matchesQuery(doc, lower) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matchesQuery(doc domain.DocumentRecord, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(doc.ExtractedText), lowerQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(doc.Summary()), lowerQuery)
}

func applyPatch(doc *domain.DocumentRecord, patch domain.DocumentPatch) {
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Type != nil {
		doc.Type = *patch.Type
	}
	if patch.Department != nil {
		doc.Department = *patch.Department
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}
	if patch.Tags != nil {
		doc.Tags = *patch.Tags
	}
	if patch.Status != nil {
		doc.Status = *patch.Status
	}
}
