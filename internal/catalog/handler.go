package catalog

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/collate/pkg/handlers"
	"github.com/JaimeStill/collate/pkg/pagination"
	"github.com/JaimeStill/collate/pkg/routes"
)

// Handler provides HTTP endpoints for catalog operations.
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
		logger:     logger.With("handler", "catalog"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/batches", Handler: h.Batches},
			{Method: "GET", Pattern: "/versions", Handler: h.Versions},
			{Method: "POST", Pattern: "/verify", Handler: h.Verify},
		},
	}
}

// List returns a paginated list of catalog records with optional query
// parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := FiltersFromQuery(r.URL.Query())
	if filters.Type != "" {
		if _, err := ParseDocType(filters.Type); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	cat, err := h.sys.Load(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	result := pagination.Paginate(cat.Records(filters), page)

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Batches returns the sorted distinct batch identifiers.
func (h *Handler) Batches(w http.ResponseWriter, r *http.Request) {
	cat, err := h.sys.Load(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cat.Batches())
}

// Versions returns the sorted distinct versions for a batch and document
// type given as query parameters.
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	batch := r.URL.Query().Get("batch")
	if batch == "" {
		err := fmt.Errorf("%w: batch required", ErrInvalidQuery)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	docType, err := ParseDocType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cat, err := h.sys.Load(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cat.Versions(batch, docType))
}

// Verify checks every catalog storage key against the object store and
// returns the verification report.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	report, err := h.sys.Verify(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
