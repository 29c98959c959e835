package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/garnizeh/placement/internal/session"
	"github.com/garnizeh/placement/pkg/models"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// userPayload is the wire shape of a User; department shows up only for the
// student variant.
type userPayload struct {
	ID         int64       `json:"id"`
	Role       models.Role `json:"role"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Department string      `json:"department,omitempty"`
}

func toUserPayload(u models.User) userPayload {
	p := userPayload{
		ID:    u.UserID(),
		Role:  u.UserRole(),
		Name:  u.UserName(),
		Email: u.UserEmail(),
	}
	if st, ok := u.(models.Student); ok {
		p.Department = st.Department
	}
	return p
}

// requireStudent gates a handler to the student role; it writes the error
// response itself and returns nil when the caller should bail out.
func requireStudent(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	if sess.User.UserRole() != models.RoleStudent {
		http.Error(w, "Students only", http.StatusForbidden)
		return nil
	}
	return sess
}

// requireStaff gates a handler to the staff roles (teacher, hod, pto).
func requireStaff(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil
	}
	if !sess.User.UserRole().Staff() {
		http.Error(w, "Staff only", http.StatusForbidden)
		return nil
	}
	return sess
}
