package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/garnizeh/placement/pkg/models"
	"github.com/garnizeh/placement/pkg/repository"
)

// Placeholder labels for ledger entries whose foreign keys do not resolve.
// Derived views degrade to these instead of failing.
const (
	UnknownJobTitle  = "N/A"
	UnknownApplicant = "Unknown Applicant"
)

type ApplicationService struct {
	apps  repository.ApplicationRepo
	jobs  repository.JobRepo
	users repository.UserRepo
}

func NewApplicationService(apps repository.ApplicationRepo, jobs repository.JobRepo, users repository.UserRepo) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, users: users}
}

// ResumeUpload is the opaque file handed over by the submission form. Content
// is never inspected, only stored.
type ResumeUpload struct {
	FileName string
	Content  []byte
}

// Submit appends one application to the ledger. The resume is mandatory and
// the job must exist in the catalog; violations abort with a validation error
// before anything is written. Duplicate (student, job) submissions are
// allowed and produce distinct entries.
func (s *ApplicationService) Submit(ctx context.Context, studentID, jobID int64, upload *ResumeUpload, coverLetter string) (*models.Application, error) {
	if upload == nil || len(upload.Content) == 0 {
		return nil, NewValidationError("Please upload your resume to apply.")
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, NewValidationError("This job posting no longer exists.")
	}

	resume := &models.Resume{
		ID:       uuid.NewString(),
		FileName: upload.FileName,
		Size:     int64(len(upload.Content)),
		Content:  upload.Content,
	}
	application := &models.Application{
		JobID:       jobID,
		StudentID:   studentID,
		CoverLetter: coverLetter,
	}

	if _, err := s.apps.CreateApplication(ctx, application, resume); err != nil {
		return nil, err
	}

	return application, nil
}

// AppliedJobIDs returns the set of job ids the user has applied to. Staff
// users never apply, so they always get an empty set.
func (s *ApplicationService) AppliedJobIDs(ctx context.Context, user models.User) (map[int64]bool, error) {
	applied := make(map[int64]bool)
	if user == nil || user.UserRole() != models.RoleStudent {
		return applied, nil
	}

	apps, err := s.apps.ListByStudent(ctx, user.UserID())
	if err != nil {
		return nil, err
	}
	for _, a := range apps {
		applied[a.JobID] = true
	}

	return applied, nil
}

// ApplicationsForStudent returns the student's applications in submission
// order (ascending ledger id).
func (s *ApplicationService) ApplicationsForStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	return s.apps.ListByStudent(ctx, studentID)
}

// ApplicationContext is one ledger entry joined with its job and applicant.
// Unresolved references show up as the placeholder labels, never as errors.
type ApplicationContext struct {
	Application    models.Application `json:"application"`
	JobTitle       string             `json:"job_title"`
	Company        string             `json:"company"`
	Location       string             `json:"location"`
	ApplicantName  string             `json:"applicant_name"`
	ApplicantEmail string             `json:"applicant_email,omitempty"`
	Department     string             `json:"department,omitempty"`
}

// ListWithContext left-joins the ledger against the catalog and the identity
// store, in ledger order.
func (s *ApplicationService) ListWithContext(ctx context.Context) ([]ApplicationContext, error) {
	apps, err := s.apps.ListApplications(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	jobsByID := make(map[int64]models.Job, len(jobs))
	for _, j := range jobs {
		jobsByID[j.ID] = j
	}

	students, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	studentsByID := make(map[int64]models.Student, len(students))
	for _, st := range students {
		studentsByID[st.ID] = st
	}

	out := make([]ApplicationContext, 0, len(apps))
	for _, a := range apps {
		out = append(out, joinOne(a, jobsByID, studentsByID))
	}

	return out, nil
}

// GetWithContext returns a single joined entry, or nil when the application
// itself does not exist.
func (s *ApplicationService) GetWithContext(ctx context.Context, id int64) (*ApplicationContext, error) {
	a, err := s.apps.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}

	ac := ApplicationContext{
		Application:   *a,
		JobTitle:      UnknownJobTitle,
		Company:       UnknownJobTitle,
		ApplicantName: UnknownApplicant,
	}

	job, err := s.jobs.GetJob(ctx, a.JobID)
	if err != nil {
		return nil, err
	}
	if job != nil {
		ac.JobTitle = job.Title
		ac.Company = job.Company
		ac.Location = job.Location
	}

	user, err := s.users.GetByID(ctx, a.StudentID)
	if err != nil {
		return nil, err
	}
	if st, ok := user.(models.Student); ok {
		ac.ApplicantName = st.Name
		ac.ApplicantEmail = st.Email
		ac.Department = st.Department
	}

	return &ac, nil
}

// StudentApplications returns one student's applications joined with job
// context, in submission order. Used by the staff student-detail view.
func (s *ApplicationService) StudentApplications(ctx context.Context, studentID int64) ([]ApplicationContext, error) {
	apps, err := s.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	jobsByID := make(map[int64]models.Job, len(jobs))
	for _, j := range jobs {
		jobsByID[j.ID] = j
	}

	studentsByID := make(map[int64]models.Student, 1)
	if user, err := s.users.GetByID(ctx, studentID); err != nil {
		return nil, err
	} else if st, ok := user.(models.Student); ok {
		studentsByID[st.ID] = st
	}

	out := make([]ApplicationContext, 0, len(apps))
	for _, a := range apps {
		out = append(out, joinOne(a, jobsByID, studentsByID))
	}

	return out, nil
}

func joinOne(a models.Application, jobsByID map[int64]models.Job, studentsByID map[int64]models.Student) ApplicationContext {
	ac := ApplicationContext{
		Application:   a,
		JobTitle:      UnknownJobTitle,
		Company:       UnknownJobTitle,
		ApplicantName: UnknownApplicant,
	}
	if j, ok := jobsByID[a.JobID]; ok {
		ac.JobTitle = j.Title
		ac.Company = j.Company
		ac.Location = j.Location
	}
	if st, ok := studentsByID[a.StudentID]; ok {
		ac.ApplicantName = st.Name
		ac.ApplicantEmail = st.Email
		ac.Department = st.Department
	}
	return ac
}
