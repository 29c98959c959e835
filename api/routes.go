package api

import (
	"github.com/gorilla/mux"

	"github.com/garnizeh/placement/internal/app"
	"github.com/garnizeh/placement/internal/config"
	"github.com/garnizeh/placement/internal/db"
	"github.com/garnizeh/placement/internal/preview"
	"github.com/garnizeh/placement/internal/repository/sqlite"
	"github.com/garnizeh/placement/internal/session"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, conn *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(conn, logger)
	previews := preview.NewManager()
	sessions := session.NewManager(previews)
	authSvc := app.NewAuthService(repo)
	appSvc := app.NewApplicationService(repo, repo, repo)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(authSvc, sessions, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo, appSvc)
	applicationsHandler := NewApplicationsHandler(appSvc, cfg.MaxResumeSize)
	studentsHandler := NewStudentsHandler(repo, appSvc)
	workspaceHandler := NewWorkspaceHandler(repo, repo, repo)
	previewsHandler := NewPreviewsHandler(previews, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	// Preview URLs are revocable capability tokens (the blob-URL analogue),
	// so they sit outside the authenticated prefix.
	r.HandleFunc("/previews/{token}", previewsHandler.GetPreview).Methods("GET")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(AuthMiddleware(cfg.JWTSecret, sessions))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Job catalog
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")

	// Applications
	apiV1.HandleFunc("/applications", applicationsHandler.SubmitApplication).Methods("POST")
	apiV1.HandleFunc("/applications", applicationsHandler.ListApplications).Methods("GET")
	apiV1.HandleFunc("/applications/{id}", applicationsHandler.GetApplication).Methods("GET")

	// Student directory (staff)
	apiV1.HandleFunc("/students", studentsHandler.ListStudents).Methods("GET")
	apiV1.HandleFunc("/students/{id}", studentsHandler.GetStudent).Methods("GET")

	// Student's own derived views
	apiV1.HandleFunc("/me/applications", applicationsHandler.MyApplications).Methods("GET")
	apiV1.HandleFunc("/me/applied-jobs", applicationsHandler.MyAppliedJobs).Methods("GET")

	// Workspace selection
	apiV1.HandleFunc("/workspace", workspaceHandler.GetWorkspace).Methods("GET")
	apiV1.HandleFunc("/workspace/selection", workspaceHandler.Select).Methods("PUT")
	apiV1.HandleFunc("/workspace/selection", workspaceHandler.ClearSelection).Methods("DELETE")

	return r
}
