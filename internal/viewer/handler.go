package viewer

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/collate/pkg/handlers"
	"github.com/JaimeStill/collate/pkg/pagination"
	"github.com/JaimeStill/collate/pkg/routes"
	"github.com/JaimeStill/collate/pkg/storage"
)

// Handler provides HTTP endpoints for view rendering.
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
		logger:     logger.With("handler", "viewer"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for viewer endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/viewer",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/render", Handler: h.Render},
			{Method: "GET", Pattern: "/strategies", Handler: h.Strategies},
		},
	}
}

// Render returns the view for the blob key given as a query parameter.
// An all-strategies failure still renders 200 with the placeholder
// view; only aborts surface as errors.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		err := fmt.Errorf("%w: key required", storage.ErrEmptyKey)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	view, err := h.sys.Render(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Strategies returns the configured chain order with render counters.
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Strategies())
}
