package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// VariantHandler handles generation and review of per-format variants
type VariantHandler struct {
	generationService *service.GenerationService
	variantService    *service.VariantService
	logger            *slog.Logger
}

// NewVariantHandler creates a new variant handler
func NewVariantHandler(
	generationService *service.GenerationService,
	variantService *service.VariantService,
	logger *slog.Logger,
) *VariantHandler {
	return &VariantHandler{
		generationService: generationService,
		variantService:    variantService,
		logger:            logger,
	}
}

// GenerateAll regenerates every format variant for a document.
// POST /api/documents/{id}/generate-formats
func (h *VariantHandler) GenerateAll(w http.ResponseWriter, r *http.Request) {
	documentID, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	result, err := h.generationService.GenerateAllFormats(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// List returns the document's current variant set.
// GET /api/documents/{id}/formats
func (h *VariantHandler) List(w http.ResponseWriter, r *http.Request) {
	documentID, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}

	variants, err := h.variantService.ListByDocument(r.Context(), documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.GeneratedVariant{"documentFormats": variants})
}

// Update changes a variant's status or content. Approval schedules a
// calendar post when the format carries a posting rule.
// PUT /api/documents/{id}/formats/{formatId}
func (h *VariantHandler) Update(w http.ResponseWriter, r *http.Request) {
	documentID, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}
	variantID, ok := PathParam(w, r, "formatId", "Variant ID")
	if !ok {
		return
	}

	var req service.UpdateVariantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	variant, err := h.variantService.Update(r.Context(), documentID, variantID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.GeneratedVariant{"documentFormat": variant})
}

// Regenerate reworks a single variant, folding in reviewer feedback.
// POST /api/documents/{id}/formats/{formatId}/regenerate
func (h *VariantHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	documentID, ok := PathParam(w, r, "id", "Document ID")
	if !ok {
		return
	}
	variantID, ok := PathParam(w, r, "formatId", "Variant ID")
	if !ok {
		return
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.generationService.Regenerate(r.Context(), documentID, variantID, req.Feedback); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
