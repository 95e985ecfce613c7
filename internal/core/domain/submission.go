package domain

// SubmissionMetadata is the user-entered upload form state.
type SubmissionMetadata struct {
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Department  string   `json:"department"`
	Language    Language `json:"language"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// SubmissionInput is one upload: the file plus its metadata.
type SubmissionInput struct {
	Metadata  SubmissionMetadata
	FileName  string
	MediaType string
	Data      []byte
}

// SubmissionResult is surfaced to the caller after a successful submission.
// It replaces the ad hoc per-field UI state of the dashboard with one value.
type SubmissionResult struct {
	Document      *DocumentRecord `json:"document"`
	ExtractedText string          `json:"extracted_text"`
	Departments   []string        `json:"departments"`
	WhatsAppSent  bool            `json:"whatsapp_sent"`
	Message       string          `json:"message"`
}

// SearchQuery is a free-text query plus exact-match filters.
// Empty filter fields match everything.
type SearchQuery struct {
	Text       string
	Department string
	Type       string
	Language   string
	Status     string
}

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalDocuments   int `json:"total_documents"`
	SummariesReady   int `json:"summaries_ready"`
	PendingReviews   int `json:"pending_reviews"`
	ComplianceIssues int `json:"compliance_issues"`
}
