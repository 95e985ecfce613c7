package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/arjunkps/docudesk/internal/core/domain"
)

type validatorFake struct {
	err error
}

func (f *validatorFake) ValidateMetadata(domain.SubmissionMetadata) error {
	return f.err
}

type extractorFake struct {
	text string
}

func (f *extractorFake) Extract(context.Context, string, string, []byte) string {
	return f.text
}

type analyzerFake struct {
	result domain.AnalysisResult
}

func (f *analyzerFake) Analyze(string, domain.SubmissionMetadata) domain.AnalysisResult {
	return f.result
}

type documentsFake struct {
	saved []domain.DocumentRecord
	err   error
}

func (f *documentsFake) GetAll(context.Context) ([]domain.DocumentRecord, error) {
	return f.saved, nil
}

func (f *documentsFake) Save(_ context.Context, rec domain.DocumentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, rec)
	return nil
}

func (f *documentsFake) Update(context.Context, string, domain.DocumentPatch) error {
	return errors.New("not implemented")
}

func (f *documentsFake) GetByID(context.Context, string) (*domain.DocumentRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *documentsFake) Search(context.Context, string) ([]domain.DocumentRecord, error) {
	return nil, errors.New("not implemented")
}

type alertsFake struct {
	created []domain.AlertRecord
	err     error
}

func (f *alertsFake) GetAll(context.Context) ([]domain.AlertRecord, error) {
	return f.created, nil
}

func (f *alertsFake) Create(_ context.Context, alert domain.AlertRecord) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, alert)
	return nil
}

func (f *alertsFake) MarkRead(context.Context, string) error {
	return errors.New("not implemented")
}

type complianceFake struct {
	created []domain.ComplianceItem
}

func (f *complianceFake) GetAll(context.Context) ([]domain.ComplianceItem, error) {
	return f.created, nil
}

func (f *complianceFake) Create(_ context.Context, item domain.ComplianceItem) error {
	f.created = append(f.created, item)
	return nil
}

type notifierFake struct {
	calls    int
	payloads []domain.NotificationPayload
}

func (f *notifierFake) SendCriticalAlert(_ context.Context, payload domain.NotificationPayload) bool {
	f.calls++
	f.payloads = append(f.payloads, payload)
	return true
}

type eventBusFake struct {
	published []domain.RoutedEvent
	err       error
}

func (f *eventBusFake) PublishDocumentRouted(_ context.Context, event domain.RoutedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func (f *eventBusFake) SubscribeDocumentRouted(context.Context, func(context.Context, domain.RoutedEvent) error) error {
	return errors.New("not implemented")
}

type submitFixture struct {
	validator  *validatorFake
	extractor  *extractorFake
	analyzer   *analyzerFake
	documents  *documentsFake
	alerts     *alertsFake
	compliance *complianceFake
	notifier   *notifierFake
	events     *eventBusFake
	uc         *SubmitDocumentUseCase
}

func newSubmitFixture(analysis domain.AnalysisResult) *submitFixture {
	f := &submitFixture{
		validator:  &validatorFake{},
		extractor:  &extractorFake{text: "extracted text"},
		analyzer:   &analyzerFake{result: analysis},
		documents:  &documentsFake{},
		alerts:     &alertsFake{},
		compliance: &complianceFake{},
		notifier:   &notifierFake{},
		events:     &eventBusFake{},
	}
	f.uc = NewSubmitDocumentUseCase(
		f.validator,
		f.extractor,
		f.analyzer,
		f.documents,
		f.alerts,
		f.compliance,
		f.notifier,
		f.events,
		SubmitSettings{
			MaxUploadBytes: 1 << 20,
			UploadedBy:     "system",
			DashboardURL:   "http://localhost:8080/dashboard",
		},
		nil,
	)
	return f
}

func sampleInput() domain.SubmissionInput {
	return domain.SubmissionInput{
		Metadata: domain.SubmissionMetadata{
			Title:      "Track Incident Report",
			Type:       "Safety Protocol",
			Department: "Operations",
			Language:   domain.LanguageEnglish,
		},
		FileName:  "incident.txt",
		MediaType: "text/plain",
		Data:      []byte("emergency maintenance required on track system, safety risk"),
	}
}

// Tuesday 22:00, outside working hours.
var offHours = time.Date(2025, 3, 11, 22, 0, 0, 0, time.UTC)

// Tuesday 11:00, inside working hours.
var onHours = time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC)

func TestSubmitCriticalDocumentFansOutAndNotifiesOffHours(t *testing.T) {
	analysis := domain.AnalysisResult{
		Departments: []string{"Engineering", "Safety"},
		IsCritical:  true,
		Summary:     "summary text",
	}
	f := newSubmitFixture(analysis)
	f.uc.WithClock(func() time.Time { return offHours })

	result, err := f.uc.Submit(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(f.documents.saved) != 1 {
		t.Fatalf("expected one saved document, got %d", len(f.documents.saved))
	}
	doc := f.documents.saved[0]
	if doc.ID == "" {
		t.Fatalf("expected generated document id")
	}
	if doc.Status != domain.StatusReady {
		t.Fatalf("expected status ready, got %s", doc.Status)
	}
	if doc.UploadDate != "2025-03-11" {
		t.Fatalf("upload date = %s", doc.UploadDate)
	}
	if doc.File == nil || doc.File.Size != int64(len(sampleInput().Data)) {
		t.Fatalf("file payload not captured: %+v", doc.File)
	}

	if len(f.alerts.created) != 2 {
		t.Fatalf("expected one alert per department, got %d", len(f.alerts.created))
	}
	if len(f.compliance.created) != 2 {
		t.Fatalf("expected one compliance item per department, got %d", len(f.compliance.created))
	}
	alert := f.alerts.created[0]
	if alert.Type != "critical_document" || alert.Priority != domain.PriorityCritical {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	if !strings.HasPrefix(alert.Title, "Critical document: ") {
		t.Fatalf("alert title = %q", alert.Title)
	}
	item := f.compliance.created[0]
	if item.DocumentID != doc.ID || item.Status != domain.CompliancePending {
		t.Fatalf("unexpected compliance item: %+v", item)
	}
	if item.AssignedTo != "Engineering Review Team" {
		t.Fatalf("assigned to = %q", item.AssignedTo)
	}

	if len(f.events.published) != 1 {
		t.Fatalf("expected one routed event, got %d", len(f.events.published))
	}
	event := f.events.published[0]
	if event.DocumentID != doc.ID || !event.Critical || len(event.Departments) != 2 {
		t.Fatalf("unexpected event: %+v", event)
	}

	if f.notifier.calls != 1 {
		t.Fatalf("expected one notification off hours, got %d", f.notifier.calls)
	}
	payload := f.notifier.payloads[0]
	if payload.Department != "Engineering" {
		t.Fatalf("expected first routed department in payload, got %q", payload.Department)
	}

	if !result.WhatsAppSent {
		t.Fatalf("expected whatsapp_sent = true")
	}
	if !strings.Contains(result.Message, "Engineering, Safety") {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestSubmitCriticalDocumentDuringWorkingHoursSkipsNotification(t *testing.T) {
	analysis := domain.AnalysisResult{
		Departments: []string{"Safety"},
		IsCritical:  true,
		Summary:     "summary text",
	}
	f := newSubmitFixture(analysis)
	f.uc.WithClock(func() time.Time { return onHours })

	result, err := f.uc.Submit(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.notifier.calls != 0 {
		t.Fatalf("expected no notification during working hours")
	}
	if result.WhatsAppSent {
		t.Fatalf("expected whatsapp_sent = false")
	}
}

func TestSubmitNonCriticalDocumentNeverNotifies(t *testing.T) {
	analysis := domain.AnalysisResult{
		Departments: []string{"Finance"},
		Summary:     "summary text",
	}
	f := newSubmitFixture(analysis)
	f.uc.WithClock(func() time.Time { return offHours })

	_, err := f.uc.Submit(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if f.notifier.calls != 0 {
		t.Fatalf("expected no notification for non-critical document")
	}
	if f.alerts.created[0].Type != "new_document" {
		t.Fatalf("alert type = %q", f.alerts.created[0].Type)
	}
	if f.alerts.created[0].Priority != domain.PriorityMedium {
		t.Fatalf("alert priority = %q", f.alerts.created[0].Priority)
	}
}

func TestSubmitRejectsEmptyFile(t *testing.T) {
	f := newSubmitFixture(domain.AnalysisResult{})

	input := sampleInput()
	input.Data = nil
	_, err := f.uc.Submit(context.Background(), input)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(f.documents.saved) != 0 {
		t.Fatalf("no document should be saved")
	}
}

func TestSubmitRejectsOversizedFile(t *testing.T) {
	f := newSubmitFixture(domain.AnalysisResult{})

	input := sampleInput()
	input.Data = make([]byte, (1<<20)+1)
	_, err := f.uc.Submit(context.Background(), input)
	if !domain.IsKind(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestSubmitRejectsInvalidMetadata(t *testing.T) {
	f := newSubmitFixture(domain.AnalysisResult{})
	f.validator.err = domain.WrapError(domain.ErrInvalidInput, "validate metadata", errors.New("title required"))

	_, err := f.uc.Submit(context.Background(), sampleInput())
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitToleratesPublishFailure(t *testing.T) {
	analysis := domain.AnalysisResult{Departments: []string{"IT"}, Summary: "s"}
	f := newSubmitFixture(analysis)
	f.uc.WithClock(func() time.Time { return onHours })
	f.events.err = errors.New("nats unavailable")

	result, err := f.uc.Submit(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Submit() error = %v, publish failures must not fail the submission", err)
	}
	if result.Document == nil {
		t.Fatalf("expected stored document in result")
	}
}

func TestSubmitWrapsAlertFailure(t *testing.T) {
	analysis := domain.AnalysisResult{Departments: []string{"IT"}, Summary: "s"}
	f := newSubmitFixture(analysis)
	f.uc.WithClock(func() time.Time { return onHours })
	f.alerts.err = errors.New("kv write failed")

	_, err := f.uc.Submit(context.Background(), sampleInput())
	if !domain.IsKind(err, domain.ErrSubmissionFailed) {
		t.Fatalf("expected ErrSubmissionFailed, got %v", err)
	}
	// The document itself was already persisted; no rollback.
	if len(f.documents.saved) != 1 {
		t.Fatalf("expected document to remain saved, got %d", len(f.documents.saved))
	}
}

func TestIsWorkingHours(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"tuesday morning", time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), true},
		{"tuesday boundary 18h", time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC), false},
		{"tuesday before 9h", time.Date(2025, 3, 11, 8, 59, 0, 0, time.UTC), false},
		{"saturday midday", time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), false},
		{"sunday midday", time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), false},
		{"friday afternoon", time.Date(2025, 3, 14, 17, 59, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWorkingHours(tc.t); got != tc.want {
				t.Fatalf("IsWorkingHours(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}
