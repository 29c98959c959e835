package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/garnizeh/placement/internal/app"
	"github.com/garnizeh/placement/internal/session"
	"github.com/garnizeh/placement/pkg/models"
)

type AuthHandler struct {
	auth          *app.AuthService
	sessions      *session.Manager
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(auth *app.AuthService, sessions *session.Manager, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signinRequest struct {
	Role     models.Role `json:"role"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Role == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Authenticate(r.Context(), req.Role, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			// Deliberately generic: never reveal which field was wrong.
			http.Error(w, "Invalid credentials. Please try again.", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Error signing in", http.StatusInternalServerError)
		return
	}

	sess := h.sessions.Start(user)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", user.UserID()),
		"role": string(user.UserRole()),
		"jti":  sess.ID,
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: toUserPayload(user)}, http.StatusOK)
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Ending the session resets its workspace, which releases any live
	// preview handle no matter what the user had open.
	h.sessions.End(sess.ID)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"message":"signed out"}`)
}
