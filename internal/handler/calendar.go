package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// CalendarHandler handles posting calendar HTTP requests
type CalendarHandler struct {
	calendarService *service.CalendarService
	logger          *slog.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService *service.CalendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// List returns all scheduled posts.
// GET /api/calendar
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.calendarService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.CalendarPost{"posts": posts})
}

// Update reschedules a post or changes its status.
// PUT /api/calendar
func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateCalendarRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.calendarService.Update(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]*models.CalendarPost{"post": post})
}
