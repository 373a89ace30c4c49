package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// IkigaiHandler handles mission record HTTP requests
type IkigaiHandler struct {
	ikigaiService *service.IkigaiService
	logger        *slog.Logger
}

// NewIkigaiHandler creates a new ikigai handler
func NewIkigaiHandler(ikigaiService *service.IkigaiService, logger *slog.Logger) *IkigaiHandler {
	return &IkigaiHandler{
		ikigaiService: ikigaiService,
		logger:        logger,
	}
}

// Get returns the mission record, or a null body when none was saved yet.
// GET /api/ikigai
func (h *IkigaiHandler) Get(w http.ResponseWriter, r *http.Request) {
	ikigai, err := h.ikigaiService.Get(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httputil.RespondJSON(w, http.StatusOK, map[string]*models.Ikigai{"ikigai": nil})
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Ikigai{"ikigai": ikigai})
}

// Save creates or overwrites the mission record.
// POST /api/ikigai
func (h *IkigaiHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req service.IkigaiRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ikigai, err := h.ikigaiService.Save(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Ikigai{"ikigai": ikigai})
}
