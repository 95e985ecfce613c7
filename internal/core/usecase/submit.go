package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
)

// SubmitSettings are the scalar knobs of the upload orchestrator.
type SubmitSettings struct {
	MaxUploadBytes int64
	UploadedBy     string
	DashboardURL   string
}

// SubmitDocumentUseCase runs one submission through the intake pipeline:
// validate, extract, classify, persist, fan out derived records, and
// conditionally notify.
type SubmitDocumentUseCase struct {
	validator  ports.MetadataValidator
	extractor  ports.TextExtractor
	analyzer   ports.Analyzer
	documents  ports.DocumentRepository
	alerts     ports.AlertRepository
	compliance ports.ComplianceRepository
	notifier   ports.Notifier
	events     ports.EventBus
	settings   SubmitSettings
	logger     *slog.Logger
	now        func() time.Time
}

func NewSubmitDocumentUseCase(
	validator ports.MetadataValidator,
	extractor ports.TextExtractor,
	analyzer ports.Analyzer,
	documents ports.DocumentRepository,
	alerts ports.AlertRepository,
	compliance ports.ComplianceRepository,
	notifier ports.Notifier,
	events ports.EventBus,
	settings SubmitSettings,
	logger *slog.Logger,
) *SubmitDocumentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmitDocumentUseCase{
		validator:  validator,
		extractor:  extractor,
		analyzer:   analyzer,
		documents:  documents,
		alerts:     alerts,
		compliance: compliance,
		notifier:   notifier,
		events:     events,
		settings:   settings,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the wall clock. Test hook for the off-hours policy.
func (uc *SubmitDocumentUseCase) WithClock(now func() time.Time) *SubmitDocumentUseCase {
	uc.now = now
	return uc
}

func (uc *SubmitDocumentUseCase) Submit(ctx context.Context, input domain.SubmissionInput) (*domain.SubmissionResult, error) {
	if len(input.Data) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "submit document", errors.New("no file provided"))
	}
	if uc.settings.MaxUploadBytes > 0 && int64(len(input.Data)) > uc.settings.MaxUploadBytes {
		return nil, domain.WrapError(
			domain.ErrPayloadTooLarge,
			"submit document",
			fmt.Errorf("file is %d bytes, cap is %d", len(input.Data), uc.settings.MaxUploadBytes),
		)
	}
	if err := uc.validator.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	text := uc.extractor.Extract(ctx, input.FileName, input.MediaType, input.Data)
	analysis := uc.analyzer.Analyze(text, input.Metadata)

	now := uc.now()
	doc := uc.buildRecord(input, text, analysis, now)

	if err := uc.documents.Save(ctx, doc); err != nil {
		return nil, domain.WrapError(domain.ErrSubmissionFailed, "save document", err)
	}

	// One alert and one compliance item per routed department. No
	// transaction spans these writes; a failure mid-sequence leaves the
	// records written so far in place.
	if err := uc.fanOut(ctx, &doc, analysis, now); err != nil {
		return nil, domain.WrapError(domain.ErrSubmissionFailed, "route document", err)
	}

	event := domain.RoutedEvent{
		DocumentID:  doc.ID,
		Departments: analysis.Departments,
		Critical:    analysis.IsCritical,
	}
	if err := uc.events.PublishDocumentRouted(ctx, event); err != nil {
		uc.logger.Warn("routed_event_publish_failed", "document_id", doc.ID, "error", err)
	}

	sent := false
	if analysis.IsCritical && !IsWorkingHours(now) {
		sent = uc.notifier.SendCriticalAlert(ctx, domain.NotificationPayload{
			DocumentTitle: doc.Title,
			Department:    primaryDepartment(analysis, input.Metadata),
			Priority:      "Critical",
			Summary:       analysis.Summary,
			DashboardLink: uc.settings.DashboardURL,
		})
	}

	uc.logger.Info("document_submitted",
		"document_id", doc.ID,
		"departments", analysis.Departments,
		"critical", analysis.IsCritical,
		"whatsapp_sent", sent,
	)

	return &domain.SubmissionResult{
		Document:      &doc,
		ExtractedText: text,
		Departments:   analysis.Departments,
		WhatsAppSent:  sent,
		Message:       successMessage(doc.Title, analysis.Departments),
	}, nil
}

func (uc *SubmitDocumentUseCase) buildRecord(
	input domain.SubmissionInput,
	text string,
	analysis domain.AnalysisResult,
	now time.Time,
) domain.DocumentRecord {
	meta := input.Metadata
	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.DocumentRecord{
		ID:          uuid.NewString(),
		Title:       meta.Title,
		Type:        meta.Type,
		Department:  meta.Department,
		Language:    meta.Language,
		Tags:        tags,
		Description: meta.Description,
		UploadedBy:  uc.settings.UploadedBy,
		UploadDate:  now.Format("2006-01-02"),
		File: &domain.FilePayload{
			Name:      input.FileName,
			Size:      int64(len(input.Data)),
			MediaType: input.MediaType,
			Base64:    base64.StdEncoding.EncodeToString(input.Data),
		},
		ExtractedText: text,
		Analysis:      &analysis,
		Status:        domain.StatusReady,
	}
}

func (uc *SubmitDocumentUseCase) fanOut(
	ctx context.Context,
	doc *domain.DocumentRecord,
	analysis domain.AnalysisResult,
	now time.Time,
) error {
	priority := domain.PriorityMedium
	alertType := "new_document"
	alertTitle := "New document: " + doc.Title
	if analysis.IsCritical {
		priority = domain.PriorityCritical
		alertType = "critical_document"
		alertTitle = "Critical document: " + doc.Title
	}

	for _, dept := range analysis.Departments {
		alert := domain.AlertRecord{
			ID:         uuid.NewString(),
			Type:       alertType,
			Title:      alertTitle,
			Message:    analysis.Summary,
			Priority:   priority,
			CreatedAt:  now.UTC(),
			IsRead:     false,
			Department: dept,
		}
		if err := uc.alerts.Create(ctx, alert); err != nil {
			return fmt.Errorf("create alert for %s: %w", dept, err)
		}

		item := domain.ComplianceItem{
			ID:          uuid.NewString(),
			Title:       "Review: " + doc.Title,
			Description: analysis.Summary,
			Deadline:    now.UTC().Add(7 * 24 * time.Hour),
			Status:      domain.CompliancePending,
			AssignedTo:  dept + " Review Team",
			Department:  dept,
			DocumentID:  doc.ID,
			Priority:    priority,
		}
		if err := uc.compliance.Create(ctx, item); err != nil {
			return fmt.Errorf("create compliance item for %s: %w", dept, err)
		}
	}
	return nil
}

// IsWorkingHours reports whether t falls inside the staffed window:
// Monday through Friday, local hour in [9, 18).
func IsWorkingHours(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return t.Hour() >= 9 && t.Hour() < 18
}

func primaryDepartment(analysis domain.AnalysisResult, meta domain.SubmissionMetadata) string {
	if len(analysis.Departments) > 0 {
		return analysis.Departments[0]
	}
	return meta.Department
}

func successMessage(title string, departments []string) string {
	if len(departments) == 0 {
		return fmt.Sprintf("Document %q stored; no routing targets identified", title)
	}
	return fmt.Sprintf("Document %q routed to %s", title, strings.Join(departments, ", "))
}
