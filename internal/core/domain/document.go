package domain

import "time"

type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

type Language string

const (
	LanguageEnglish   Language = "english"
	LanguageMalayalam Language = "malayalam"
	LanguageBoth      Language = "both"
)

// FilePayload is the uploaded file embedded into the stored record.
type FilePayload struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type"`
	Base64    string `json:"base64"`
}

type DocumentRecord struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Type          string          `json:"type"`
	Department    string          `json:"department"`
	Language      Language        `json:"language"`
	Tags          []string        `json:"tags"`
	Description   string          `json:"description,omitempty"`
	UploadedBy    string          `json:"uploaded_by"`
	UploadDate    string          `json:"upload_date"`
	File          *FilePayload    `json:"file,omitempty"`
	ExtractedText string          `json:"extracted_text,omitempty"`
	Analysis      *AnalysisResult `json:"analysis,omitempty"`
	Status        DocumentStatus  `json:"status"`
}

// Summary returns the generated analysis summary, if any.
func (d *DocumentRecord) Summary() string {
	if d.Analysis == nil {
		return ""
	}
	return d.Analysis.Summary
}

// DocumentPatch is a partial update applied by id. Nil fields are left as is.
type DocumentPatch struct {
	Title       *string         `json:"title,omitempty"`
	Type        *string         `json:"type,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Description *string         `json:"description,omitempty"`
	Tags        *[]string       `json:"tags,omitempty"`
	Status      *DocumentStatus `json:"status,omitempty"`
}

type AnalysisResult struct {
	Departments       []string `json:"departments"`
	IsCritical        bool     `json:"is_critical"`
	CriticalityReason string   `json:"criticality_reason,omitempty"`
	Summary           string   `json:"summary"`
	KeyPoints         []string `json:"key_points"`
	Entities          Entities `json:"entities"`
}

type Entities struct {
	Names       []string `json:"names"`
	Departments []string `json:"departments"`
	Dates       []string `json:"dates"`
	Amounts     []string `json:"amounts"`
	Emails      []string `json:"emails"`
}

type AlertPriority string

const (
	PriorityCritical AlertPriority = "critical"
	PriorityMedium   AlertPriority = "medium"
)

type AlertRecord struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Priority   AlertPriority `json:"priority"`
	CreatedAt  time.Time     `json:"created_at"`
	IsRead     bool          `json:"is_read"`
	Department string        `json:"department"`
}

type ComplianceStatus string

const (
	CompliancePending    ComplianceStatus = "pending"
	ComplianceInProgress ComplianceStatus = "in_progress"
	ComplianceDone       ComplianceStatus = "done"
)

type ComplianceItem struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Deadline    time.Time        `json:"deadline"`
	Status      ComplianceStatus `json:"status"`
	AssignedTo  string           `json:"assigned_to"`
	Department  string           `json:"department"`
	DocumentID  string           `json:"document_id"`
	Priority    AlertPriority    `json:"priority"`
}

// NotificationPayload is what the notifier formats into an outbound message.
type NotificationPayload struct {
	DocumentTitle string `json:"document_title"`
	Department    string `json:"department"`
	Priority      string `json:"priority"`
	Summary       string `json:"summary"`
	DashboardLink string `json:"dashboard_link"`
}

// NotificationRecord is one entry of the capped notification audit history.
type NotificationRecord struct {
	Timestamp time.Time           `json:"timestamp"`
	Payload   NotificationPayload `json:"payload"`
	Sent      bool                `json:"sent"`
}

// RoutedEvent is published after a submission has been persisted and routed.
type RoutedEvent struct {
	DocumentID  string   `json:"document_id"`
	Departments []string `json:"departments"`
	Critical    bool     `json:"critical"`
}
