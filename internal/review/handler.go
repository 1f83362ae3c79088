package review

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/collate/internal/catalog"
	"github.com/JaimeStill/collate/pkg/handlers"
	"github.com/JaimeStill/collate/pkg/pagination"
	"github.com/JaimeStill/collate/pkg/routes"
)

// Handler provides HTTP endpoints for review session operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and
// pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "review"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for review endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/pairs", Handler: h.Pairs},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Get},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "PUT", Pattern: "/{id}/batch", Handler: h.SelectBatch},
			{Method: "PUT", Pattern: "/{id}/doctype", Handler: h.SelectDocType},
			{Method: "PUT", Pattern: "/{id}/comparison", Handler: h.SelectComparison},
			{Method: "POST", Pattern: "/{id}/decision", Handler: h.RecordDecision},
			{Method: "GET", Pattern: "/{id}/status", Handler: h.Status},
			{Method: "GET", Pattern: "/{id}/audit", Handler: h.Audit},
			{Method: "GET", Pattern: "/{id}/audit/export.csv", Handler: h.DownloadCSV},
			{Method: "POST", Pattern: "/{id}/audit/export", Handler: h.Export},
		},
	}
}

// Pairs returns the candidate comparison pairs for a batch and
// document type given as query parameters.
func (h *Handler) Pairs(w http.ResponseWriter, r *http.Request) {
	batch := r.URL.Query().Get("batch")
	if batch == "" {
		err := fmt.Errorf("%w: batch required", ErrValidation)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	docType, err := catalog.ParseDocType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	pairs, err := h.sys.Pairs(r.Context(), batch, docType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pairs)
}

// Create starts a new review session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sys.Create(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, snapshot)
}

// List returns a paginated list of session summaries.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	handlers.RespondJSON(w, http.StatusOK, h.sys.List(page))
}

// Get returns the snapshot for a session.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sys.Get(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// Delete discards a session.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SelectBatch activates a batch for a session.
func (h *Handler) SelectBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Batch string `json:"batch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	snapshot, err := h.sys.SelectBatch(r.PathValue("id"), body.Batch)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// SelectDocType activates a document type for a session.
func (h *Handler) SelectDocType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DocType string `json:"doc_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	docType, err := catalog.ParseDocType(body.DocType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	snapshot, err := h.sys.SelectDocType(r.PathValue("id"), docType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// SelectComparison sets the active version pair for a session.
func (h *Handler) SelectComparison(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VersionA int `json:"version_a"`
		VersionB int `json:"version_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	snapshot, err := h.sys.SelectComparison(r.PathValue("id"), body.VersionA, body.VersionB)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// RecordDecision saves a review decision for a session's active
// comparison.
func (h *Handler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Decision string `json:"decision"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entry, err := h.sys.RecordDecision(r.PathValue("id"), body.Decision, body.Notes)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, entry)
}

// Status returns the review status for a (batch, type) combination.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	batch := r.URL.Query().Get("batch")
	if batch == "" {
		err := fmt.Errorf("%w: batch required", ErrValidation)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	docType, err := catalog.ParseDocType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	status, err := h.sys.Status(r.PathValue("id"), batch, docType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusEntry{
		Batch:   batch,
		DocType: docType,
		Status:  status,
	})
}

// Audit returns a session's audit entries in append order.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sys.Audit(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}

// DownloadCSV serves a session's audit trail as a CSV attachment
// without persisting it.
func (h *Handler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	text, err := h.sys.ExportCSV(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="audit_trail.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// Export serializes a session's audit trail and persists it to the
// object store. The CSV text returns regardless of persistence
// outcome.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Export(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
