package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/placement/internal/workspace"
	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

type WorkspaceHandler struct {
	jobs  repository.JobRepo
	apps  repository.ApplicationRepo
	users repository.UserRepo
}

func NewWorkspaceHandler(jobs repository.JobRepo, apps repository.ApplicationRepo, users repository.UserRepo) *WorkspaceHandler {
	return &WorkspaceHandler{jobs: jobs, apps: apps, users: users}
}

type selectRequest struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

type workspaceResponse struct {
	workspace.Snapshot
	PreviewURL string `json:"preview_url,omitempty"`
}

func toWorkspaceResponse(s workspace.Snapshot) workspaceResponse {
	resp := workspaceResponse{Snapshot: s}
	if s.PreviewToken != "" {
		resp.PreviewURL = "/previews/" + s.PreviewToken
	}
	return resp
}

// GetWorkspace returns the current selection without changing it.
func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, toWorkspaceResponse(sess.Workspace.Current()), http.StatusOK)
}

// Select moves the workspace to the requested detail state. Selecting an
// application acquires a preview handle for its resume; whatever was selected
// before has its handle released.
func (h *WorkspaceHandler) Select(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.ID <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	switch req.Kind {
	case "job":
		if sess.User.UserRole() != models.RoleStudent {
			http.Error(w, "Students only", http.StatusForbidden)
			return
		}
		job, err := h.jobs.GetJob(r.Context(), req.ID)
		if err != nil {
			http.Error(w, "failed to load job", http.StatusInternalServerError)
			return
		}
		if job == nil {
			http.Error(w, "job not found", http.StatusNotFound)
			return
		}
		writeJSON(w, toWorkspaceResponse(sess.Workspace.SelectJob(req.ID)), http.StatusOK)

	case "application":
		if !sess.User.UserRole().Staff() {
			http.Error(w, "Staff only", http.StatusForbidden)
			return
		}
		application, err := h.apps.GetApplication(r.Context(), req.ID)
		if err != nil {
			http.Error(w, "failed to load application", http.StatusInternalServerError)
			return
		}
		if application == nil {
			http.Error(w, "application not found", http.StatusNotFound)
			return
		}
		writeJSON(w, toWorkspaceResponse(sess.Workspace.SelectApplication(req.ID, application.ResumeID)), http.StatusOK)

	case "student":
		if !sess.User.UserRole().Staff() {
			http.Error(w, "Staff only", http.StatusForbidden)
			return
		}
		user, err := h.users.GetByID(r.Context(), req.ID)
		if err != nil {
			http.Error(w, "failed to load student", http.StatusInternalServerError)
			return
		}
		if _, ok := user.(models.Student); !ok {
			http.Error(w, "student not found", http.StatusNotFound)
			return
		}
		writeJSON(w, toWorkspaceResponse(sess.Workspace.SelectStudent(req.ID)), http.StatusOK)

	default:
		http.Error(w, "unknown selection kind", http.StatusBadRequest)
	}
}

// ClearSelection returns the workspace to the nothing-selected state,
// releasing any preview handle.
func (h *WorkspaceHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, toWorkspaceResponse(sess.Workspace.Clear()), http.StatusOK)
}
