package ports

import (
	"context"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

// KeyValueStore is the blob persistence capability the repositories build on.
// Get returns (nil, nil) for an absent key. Set overwrites the whole value.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// DocumentRepository persists and reads document records.
type DocumentRepository interface {
	GetAll(ctx context.Context) ([]domain.DocumentRecord, error)
	Save(ctx context.Context, rec domain.DocumentRecord) error
	Update(ctx context.Context, id string, patch domain.DocumentPatch) error
	GetByID(ctx context.Context, id string) (*domain.DocumentRecord, error)
	Search(ctx context.Context, query string) ([]domain.DocumentRecord, error)
}

// AlertRepository stores derived alert records, newest first.
type AlertRepository interface {
	GetAll(ctx context.Context) ([]domain.AlertRecord, error)
	Create(ctx context.Context, alert domain.AlertRecord) error
	MarkRead(ctx context.Context, id string) error
}

// ComplianceRepository stores derived compliance items, newest first.
type ComplianceRepository interface {
	GetAll(ctx context.Context) ([]domain.ComplianceItem, error)
	Create(ctx context.Context, item domain.ComplianceItem) error
}

// NotificationHistory is the capped audit trail of outbound notifications.
type NotificationHistory interface {
	Append(ctx context.Context, rec domain.NotificationRecord) error
	List(ctx context.Context) ([]domain.NotificationRecord, error)
}

// TextExtractor turns an uploaded file into raw text. It never fails:
// every failure path degrades to an empty string.
type TextExtractor interface {
	Extract(ctx context.Context, filename, mediaType string, data []byte) string
}

// Analyzer classifies extracted text against the department taxonomy.
// Pure function of its inputs.
type Analyzer interface {
	Analyze(text string, meta domain.SubmissionMetadata) domain.AnalysisResult
}

// OCREngine recognizes text in an image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// MetadataValidator checks user-entered upload metadata.
type MetadataValidator interface {
	ValidateMetadata(meta domain.SubmissionMetadata) error
}

// Notifier delivers a critical-document message over an external channel.
// Fire-and-forget: the returned flag reports dispatch, not delivery.
type Notifier interface {
	SendCriticalAlert(ctx context.Context, payload domain.NotificationPayload) bool
}

// LinkOpener triggers an externally-addressed deep link.
type LinkOpener interface {
	Open(ctx context.Context, url string) error
}

// EventBus publishes/consumes routed-document events.
type EventBus interface {
	PublishDocumentRouted(ctx context.Context, event domain.RoutedEvent) error
	SubscribeDocumentRouted(ctx context.Context, handler func(context.Context, domain.RoutedEvent) error) error
}
