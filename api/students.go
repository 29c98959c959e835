package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/placement/internal/app"
	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

type StudentsHandler struct {
	users repository.UserRepo
	apps  *app.ApplicationService
}

func NewStudentsHandler(users repository.UserRepo, apps *app.ApplicationService) *StudentsHandler {
	return &StudentsHandler{users: users, apps: apps}
}

// ListStudents is the staff directory view.
func (h *StudentsHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if sess := requireStaff(w, r); sess == nil {
		return
	}

	students, err := h.users.ListStudents(r.Context())
	if err != nil {
		http.Error(w, "failed to list students", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"total": len(students), "items": students}, http.StatusOK)
}

type studentDetail struct {
	Student      models.Student           `json:"student"`
	Applications []app.ApplicationContext `json:"applications"`
}

// GetStudent returns one student's profile plus their application history in
// submission order.
func (h *StudentsHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	if sess := requireStaff(w, r); sess == nil {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid student id", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load student", http.StatusInternalServerError)
		return
	}
	st, ok := user.(models.Student)
	if !ok {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}

	apps, err := h.apps.StudentApplications(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load applications", http.StatusInternalServerError)
		return
	}
	if apps == nil {
		apps = []app.ApplicationContext{}
	}

	writeJSON(w, studentDetail{Student: st, Applications: apps}, http.StatusOK)
}
