package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// TopicHandler handles topic backlog HTTP requests
type TopicHandler struct {
	topicService *service.TopicService
	logger       *slog.Logger
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(topicService *service.TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		logger:       logger,
	}
}

// List returns all topics, incomplete first.
// GET /api/topics
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.Topic{"topics": topics})
}

// Create adds a topic to the backlog.
// POST /api/topics
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.topicService.Create(r.Context(), req.Title)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Topic{"topic": topic})
}

// Update renames a topic or toggles its completion.
// PUT /api/topics/{id}
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Topic ID")
	if !ok {
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.topicService.Update(r.Context(), id, req.Title, req.Completed)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.Topic{"topic": topic})
}

// Delete removes a topic.
// DELETE /api/topics/{id}
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Topic ID")
	if !ok {
		return
	}

	if err := h.topicService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GenerateIdeas asks the model for fresh topic ideas grounded in the
// mission record and recent writing.
// POST /api/topics/generate
func (h *TopicHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.topicService.GenerateIdeas(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]string{"ideas": ideas})
}
