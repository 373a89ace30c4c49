package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// PlaybookHandler handles playbook HTTP requests
type PlaybookHandler struct {
	playbookService *service.PlaybookService
	logger          *slog.Logger
}

// NewPlaybookHandler creates a new playbook handler
func NewPlaybookHandler(playbookService *service.PlaybookService, logger *slog.Logger) *PlaybookHandler {
	return &PlaybookHandler{
		playbookService: playbookService,
		logger:          logger,
	}
}

// List returns all playbooks.
// GET /api/playbooks
func (h *PlaybookHandler) List(w http.ResponseWriter, r *http.Request) {
	playbooks, err := h.playbookService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.Playbook{"playbooks": playbooks})
}

// Create generates a playbook from a source document.
// POST /api/playbooks
func (h *PlaybookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePlaybookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playbook, err := h.playbookService.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Playbook{"playbook": playbook})
}

// Get retrieves a playbook with its slides.
// GET /api/playbooks/{id}
func (h *PlaybookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Playbook ID")
	if !ok {
		return
	}

	playbook, err := h.playbookService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Playbook{"playbook": playbook})
}

// Update edits a playbook's title, description, content or draft flag.
// PUT /api/playbooks/{id}
func (h *PlaybookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Playbook ID")
	if !ok {
		return
	}

	var req service.UpdatePlaybookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playbook, err := h.playbookService.Update(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Playbook{"playbook": playbook})
}

// Delete removes a playbook and its slides.
// DELETE /api/playbooks/{id}
func (h *PlaybookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Playbook ID")
	if !ok {
		return
	}

	if err := h.playbookService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SaveSlides replaces the playbook's slide deck wholesale.
// PUT /api/playbooks/{id}/slides
func (h *PlaybookHandler) SaveSlides(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Playbook ID")
	if !ok {
		return
	}

	var req struct {
		Slides []service.SlideInput `json:"slides"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slides, err := h.playbookService.SaveSlides(r.Context(), id, req.Slides)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.PlaybookSlide{"slides": slides})
}
