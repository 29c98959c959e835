package mock

import (
	"context"
	"fmt"

	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Jobs  *JobRepo
	Apps  *ApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users: &UserRepo{UsersByID: make(map[int64]models.User)},
		Jobs:  &JobRepo{},
		Apps:  &ApplicationRepo{Resumes: make(map[string]*models.Resume)},
	}
}

var _ repository.UserRepo = (*UserRepo)(nil)
var _ repository.JobRepo = (*JobRepo)(nil)
var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)
var _ repository.ResumeRepo = (*ApplicationRepo)(nil)

type UserRepo struct {
	UsersByID map[int64]models.User
	Students  []models.Student
	Creds     []models.Credential
	Err       error
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.UsersByID[id], nil
}

func (m *UserRepo) FindCredentials(ctx context.Context, role models.Role, email string) ([]models.Credential, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Credential
	for _, c := range m.Creds {
		if c.User.UserRole() == role && c.User.UserEmail() == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *UserRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Students, nil
}

type JobRepo struct {
	Jobs []models.Job
	Err  error
}

func (m *JobRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Jobs, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, j := range m.Jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, nil
}

type ApplicationRepo struct {
	Items     []models.Application
	Resumes   map[string]*models.Resume
	CreateErr error
	Err       error
	nextID    int64
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application, resume *models.Resume) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}
	if resume == nil || len(resume.Content) == 0 {
		return 0, fmt.Errorf("application requires a resume")
	}
	m.nextID++
	a.ID = m.nextID
	a.ResumeID = resume.ID
	m.Items = append(m.Items, *a)
	m.Resumes[resume.ID] = resume
	return a.ID, nil
}

func (m *ApplicationRepo) ListApplications(ctx context.Context) ([]models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items, nil
}

func (m *ApplicationRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Application
	for _, a := range m.Items {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Items {
		if a.ID == id {
			app := a
			return &app, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) CountApplications(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Items)), nil
}

func (m *ApplicationRepo) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Resumes[id], nil
}
