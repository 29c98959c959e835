package repository

import (
	"context"

	"github.com/garnizeh/placement/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups return (nil, nil) when the row does not exist.

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
	// FindCredentials returns every identity row matching role and email.
	// Callers enforce the exactly-one rule; zero and many both mean the
	// credentials do not authenticate.
	FindCredentials(ctx context.Context, role models.Role, email string) ([]models.Credential, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
}

type JobRepo interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
}

type ApplicationRepo interface {
	// CreateApplication appends to the ledger and stores the resume in the
	// same transaction. The resume is required; a nil resume is an error,
	// never a partial write.
	CreateApplication(ctx context.Context, a *models.Application, resume *models.Resume) (int64, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	GetApplication(ctx context.Context, id int64) (*models.Application, error)
	CountApplications(ctx context.Context) (int64, error)
}

type ResumeRepo interface {
	GetResume(ctx context.Context, id string) (*models.Resume, error)
}
