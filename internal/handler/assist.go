package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// AssistHandler handles the writing assistance endpoints: inline
// suggestions and research insights.
type AssistHandler struct {
	suggestionService *service.SuggestionService
	researchService   *service.ResearchService
	logger            *slog.Logger
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(
	suggestionService *service.SuggestionService,
	researchService *service.ResearchService,
	logger *slog.Logger,
) *AssistHandler {
	return &AssistHandler{
		suggestionService: suggestionService,
		researchService:   researchService,
		logger:            logger,
	}
}

// Suggest returns one continuation suggestion for the draft, or null
// when the draft is too short or no usable suggestion came back.
// POST /api/suggestions
func (h *AssistHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestion, err := h.suggestionService.Suggest(r.Context(), req.Content)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Suggestion{"suggestion": suggestion})
}

// Research returns supporting facts and angles for the draft content.
// POST /api/research
func (h *AssistHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content     string `json:"content"`
		CustomQuery string `json:"customQuery"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.researchService.Research(r.Context(), req.Content, req.CustomQuery)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.ResearchInsight{"results": results})
}
