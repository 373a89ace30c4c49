package handler

import (
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// maxUploadSize caps context file uploads at 20MB.
const maxUploadSize = 20 << 20

// ContextHandler handles context library HTTP requests
type ContextHandler struct {
	contextService *service.ContextService
	logger         *slog.Logger
}

// NewContextHandler creates a new context handler
func NewContextHandler(contextService *service.ContextService, logger *slog.Logger) *ContextHandler {
	return &ContextHandler{
		contextService: contextService,
		logger:         logger,
	}
}

// List returns metadata for every uploaded context document.
// GET /api/context
func (h *ContextHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.contextService.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.ContextDocument{"contextDocuments": docs})
}

// Upload accepts a multipart PDF or DOCX file, extracts its text and
// stores both the extracted content and the original file.
// POST /api/context/upload
func (h *ContextHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	folder := r.FormValue("folder")

	doc, err := h.contextService.Upload(r.Context(), header.Filename, mimeType, folder, data)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"contextDocument": map[string]any{
			"id":        doc.ID,
			"filename":  doc.Filename,
			"createdAt": doc.CreatedAt,
		},
	})
}

// Delete removes a context document and its stored file.
// DELETE /api/context?id={id}
func (h *ContextHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID required")
		return
	}

	if err := h.contextService.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
