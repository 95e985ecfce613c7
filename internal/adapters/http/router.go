package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/arjunkps/docudesk/internal/config"
	"github.com/arjunkps/docudesk/internal/core/domain"
	"github.com/arjunkps/docudesk/internal/core/ports"
	"github.com/arjunkps/docudesk/internal/export"
	"github.com/arjunkps/docudesk/internal/observability/metrics"
)

const serviceName = "docudesk-api"

// multipartMemoryLimit bounds how much of an upload stays in memory while
// parsing the form; larger parts spill to temp files.
const multipartMemoryLimit = 32 << 20

type Router struct {
	cfg    config.Config
	logger *slog.Logger

	submitUC ports.DocumentSubmitter
	finderUC ports.DocumentFinder

	documents  ports.DocumentRepository
	alerts     ports.AlertRepository
	compliance ports.ComplianceRepository
	history    ports.NotificationHistory

	httpMetrics     *metrics.HTTPServerMetrics
	pipelineMetrics *metrics.PipelineMetrics
}

func NewRouter(
	cfg config.Config,
	logger *slog.Logger,
	submitUC ports.DocumentSubmitter,
	finderUC ports.DocumentFinder,
	documents ports.DocumentRepository,
	alerts ports.AlertRepository,
	compliance ports.ComplianceRepository,
	history ports.NotificationHistory,
	httpMetrics *metrics.HTTPServerMetrics,
	pipelineMetrics *metrics.PipelineMetrics,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:             cfg,
		logger:          logger,
		submitUC:        submitUC,
		finderUC:        finderUC,
		documents:       documents,
		alerts:          alerts,
		compliance:      compliance,
		history:         history,
		httpMetrics:     httpMetrics,
		pipelineMetrics: pipelineMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documentsCollection)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/alerts", rt.listAlerts)
	mux.HandleFunc("/v1/alerts/", rt.markAlertRead)
	mux.HandleFunc("/v1/compliance", rt.listCompliance)
	mux.HandleFunc("/v1/notifications", rt.listNotifications)
	mux.HandleFunc("/v1/stats", rt.stats)
	mux.HandleFunc("/v1/exports/compliance", rt.exportCompliance)
	if rt.httpMetrics != nil {
		mux.Handle("/metrics", rt.httpMetrics.Handler())
	}

	var handler http.Handler = mux
	handler = rt.metricsMiddleware(handler)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.searchDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if rt.pipelineMetrics != nil {
		rt.pipelineMetrics.StartSubmission()
	}

	result, err := rt.runSubmission(r)

	if rt.pipelineMetrics != nil {
		rt.pipelineMetrics.FinishSubmission(serviceName, time.Since(start), err)
	}

	if err != nil {
		switch {
		case domain.IsKind(err, domain.ErrInvalidInput):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case domain.IsKind(err, domain.ErrPayloadTooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		default:
			rt.logger.Error("submission_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "document processing failed"})
		}
		return
	}

	if rt.pipelineMetrics != nil {
		for _, dept := range result.Departments {
			rt.pipelineMetrics.AlertCreated(serviceName, dept)
		}
		if result.WhatsAppSent {
			rt.pipelineMetrics.NotificationSent()
		}
	}

	writeJSON(w, http.StatusCreated, result)
}

func (rt *Router) runSubmission(r *http.Request) (*domain.SubmissionResult, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "parse upload form", err)
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read upload", err)
	}
	defer file.Close()

	data, err := readAllLimited(file, rt.cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	input := domain.SubmissionInput{
		Metadata:  metadataFromForm(r),
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}
	return rt.submitUC.Submit(r.Context(), input)
}

func metadataFromForm(r *http.Request) domain.SubmissionMetadata {
	language := domain.Language(strings.TrimSpace(r.FormValue("language")))
	if language == "" {
		language = domain.LanguageEnglish
	}

	tags := []string{}
	for _, tag := range strings.Split(r.FormValue("tags"), ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return domain.SubmissionMetadata{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Type:        strings.TrimSpace(r.FormValue("type")),
		Department:  strings.TrimSpace(r.FormValue("department")),
		Language:    language,
		Tags:        tags,
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}

func (rt *Router) searchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.SearchQuery{
		Text:       strings.TrimSpace(q.Get("q")),
		Department: q.Get("department"),
		Type:       q.Get("type"),
		Language:   q.Get("language"),
		Status:     q.Get("status"),
	}

	docs, err := rt.finderUC.Search(r.Context(), query)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		doc, err := rt.documents.GetByID(r.Context(), id)
		if err != nil {
			rt.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case http.MethodPatch:
		var patch domain.DocumentPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		if err := rt.documents.Update(r.Context(), id, patch); err != nil {
			rt.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	alerts, err := rt.alerts.GetAll(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (rt *Router) markAlertRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/alerts/")
	id, ok := strings.CutSuffix(rest, "/read")
	if !ok || id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "alert id is required"})
		return
	}
	if err := rt.alerts.MarkRead(r.Context(), id); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) listCompliance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	items, err := rt.compliance.GetAll(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (rt *Router) listNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	records, err := rt.history.List(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (rt *Router) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	stats, err := rt.finderUC.Stats(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) exportCompliance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	items, err := rt.compliance.GetAll(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	workbook, err := export.ComplianceXLSX(items)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="compliance.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		rt.logger.Error("request_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
