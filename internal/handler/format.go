package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// FormatHandler handles format definition HTTP requests
type FormatHandler struct {
	formatService *service.FormatService
	logger        *slog.Logger
}

// NewFormatHandler creates a new format handler
func NewFormatHandler(formatService *service.FormatService, logger *slog.Logger) *FormatHandler {
	return &FormatHandler{
		formatService: formatService,
		logger:        logger,
	}
}

// List returns all formats with their posting rules.
// GET /api/formats
func (h *FormatHandler) List(w http.ResponseWriter, r *http.Request) {
	formats, err := h.formatService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.Format{"formats": formats})
}

// Create creates a format.
// POST /api/formats
func (h *FormatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.FormatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	format, err := h.formatService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Format{"format": format})
}

// Update overwrites a format, replacing its posting rules wholesale.
// PUT /api/formats/{id}
func (h *FormatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Format ID")
	if !ok {
		return
	}

	var req service.FormatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	format, err := h.formatService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Format{"format": format})
}

// Delete removes a format.
// DELETE /api/formats/{id}
func (h *FormatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Format ID")
	if !ok {
		return
	}

	if err := h.formatService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
