package api

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/placement/internal/app"
)

type ApplicationsHandler struct {
	apps          *app.ApplicationService
	maxResumeSize int64
}

func NewApplicationsHandler(apps *app.ApplicationService, maxResumeSize int64) *ApplicationsHandler {
	return &ApplicationsHandler{apps: apps, maxResumeSize: maxResumeSize}
}

// SubmitApplication handles the student's multipart submission form. The
// resume file part is mandatory and the submitted job must be the one open in
// the student's workspace; either violation aborts before any write.
func (h *ApplicationsHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	sess := requireStudent(w, r)
	if sess == nil {
		return
	}

	if err := r.ParseMultipartForm(h.maxResumeSize); err != nil {
		http.Error(w, "invalid submission form", http.StatusBadRequest)
		return
	}

	jobID, err := strconv.ParseInt(r.FormValue("job_id"), 10, 64)
	if err != nil || jobID <= 0 {
		http.Error(w, "invalid job_id", http.StatusBadRequest)
		return
	}

	selected := sess.Workspace.Current().SelectedJob
	if selected == nil || *selected != jobID {
		http.Error(w, "Open the job posting before applying.", http.StatusConflict)
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		http.Error(w, "Please upload your resume to apply.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxResumeSize+1))
	if err != nil {
		http.Error(w, "failed to read resume", http.StatusBadRequest)
		return
	}
	if int64(len(content)) > h.maxResumeSize {
		http.Error(w, "Resume is too large.", http.StatusRequestEntityTooLarge)
		return
	}

	upload := &app.ResumeUpload{FileName: header.Filename, Content: content}
	application, err := h.apps.Submit(r.Context(), sess.User.UserID(), jobID, upload, r.FormValue("cover_letter"))
	if err != nil {
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Message, http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to submit application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, application, http.StatusCreated)
}

// ListApplications is the staff view: every ledger entry joined with its job
// and applicant, unresolved references shown as placeholders.
func (h *ApplicationsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	if sess := requireStaff(w, r); sess == nil {
		return
	}

	list, err := h.apps.ListWithContext(r.Context())
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"total": len(list), "items": list}, http.StatusOK)
}

func (h *ApplicationsHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	if sess := requireStaff(w, r); sess == nil {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid application id", http.StatusBadRequest)
		return
	}

	ac, err := h.apps.GetWithContext(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load application", http.StatusInternalServerError)
		return
	}
	if ac == nil {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	writeJSON(w, ac, http.StatusOK)
}

// MyApplications returns the signed-in student's submissions in chronological
// order.
func (h *ApplicationsHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	sess := requireStudent(w, r)
	if sess == nil {
		return
	}

	list, err := h.apps.ApplicationsForStudent(r.Context(), sess.User.UserID())
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"total": len(list), "items": list}, http.StatusOK)
}

// MyAppliedJobs returns the derived applied-job-id set for the student.
func (h *ApplicationsHandler) MyAppliedJobs(w http.ResponseWriter, r *http.Request) {
	sess := requireStudent(w, r)
	if sess == nil {
		return
	}

	applied, err := h.apps.AppliedJobIDs(r.Context(), sess.User)
	if err != nil {
		http.Error(w, "failed to derive applied jobs", http.StatusInternalServerError)
		return
	}

	ids := make([]int64, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	// map iteration order is random; keep the payload stable
	slices.Sort(ids)

	writeJSON(w, map[string]any{"job_ids": ids}, http.StatusOK)
}
