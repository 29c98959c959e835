package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/placement/internal/app"
	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

type JobsHandler struct {
	jobs repository.JobRepo
	apps *app.ApplicationService
}

func NewJobsHandler(jobs repository.JobRepo, apps *app.ApplicationService) *JobsHandler {
	return &JobsHandler{jobs: jobs, apps: apps}
}

type jobItem struct {
	models.Job
	Applied bool `json:"applied"`
}

// ListJobs returns the catalog. For a student the applied flag reflects the
// derived applied-jobs set; staff see it always false.
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	jobs, err := h.jobs.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	applied, err := h.apps.AppliedJobIDs(r.Context(), sess.User)
	if err != nil {
		http.Error(w, "failed to derive applied jobs", http.StatusInternalServerError)
		return
	}

	items := make([]jobItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, jobItem{Job: j, Applied: applied[j.ID]})
	}

	writeJSON(w, map[string]any{"total": len(items), "items": items}, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	applied, err := h.apps.AppliedJobIDs(r.Context(), sess.User)
	if err != nil {
		http.Error(w, "failed to derive applied jobs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, jobItem{Job: *job, Applied: applied[job.ID]}, http.StatusOK)
}
