package api

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/garnizeh/placement/internal/preview"
	"github.com/garnizeh/placement/pkg/repository"
)

// PreviewsHandler serves resume bytes for live display handles. The token is
// the capability: once the handle is released the token stops resolving, so
// this route needs no session of its own.
type PreviewsHandler struct {
	previews *preview.Manager
	resumes  repository.ResumeRepo
}

func NewPreviewsHandler(previews *preview.Manager, resumes repository.ResumeRepo) *PreviewsHandler {
	return &PreviewsHandler{previews: previews, resumes: resumes}
}

func (h *PreviewsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	resumeID, ok := h.previews.Resolve(token)
	if !ok {
		http.Error(w, "preview not found", http.StatusNotFound)
		return
	}

	resume, err := h.resumes.GetResume(r.Context(), resumeID)
	if err != nil {
		http.Error(w, "failed to load resume", http.StatusInternalServerError)
		return
	}
	if resume == nil {
		http.Error(w, "preview not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", resume.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(resume.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resume.Content); err != nil {
		logger.Error("write preview body", slog.Any("err", err))
	}
}
