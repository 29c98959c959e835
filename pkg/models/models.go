package models

// Domain models for the placement portal. Users, jobs and resumes are seeded
// at process start and read-only afterwards; applications are append-only.

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleHOD     Role = "hod"
	RolePTO     Role = "pto"
)

// Valid reports whether r is one of the four known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleHOD, RolePTO:
		return true
	default:
		return false
	}
}

// Staff reports whether r is a staff role (teacher, hod or pto).
func (r Role) Staff() bool {
	return r == RoleTeacher || r == RoleHOD || r == RolePTO
}

type EmploymentType string

const (
	FullTime   EmploymentType = "Full-time"
	Internship EmploymentType = "Internship"
	Contract   EmploymentType = "Contract"
)

// User is a sealed union over the two account shapes. A value is always
// exactly one of Student or Staff; the department field exists only on the
// student variant, so wrong-variant access fails at compile time.
type User interface {
	UserID() int64
	UserEmail() string
	UserName() string
	UserRole() Role

	sealedUser()
}

type Student struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

func (s Student) UserID() int64     { return s.ID }
func (s Student) UserEmail() string { return s.Email }
func (s Student) UserName() string  { return s.Name }
func (s Student) UserRole() Role    { return RoleStudent }
func (Student) sealedUser()         {}

// Staff covers the teacher, hod and pto roles; StaffRole is always one of
// those three.
type Staff struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	StaffRole Role   `json:"role"`
}

func (s Staff) UserID() int64     { return s.ID }
func (s Staff) UserEmail() string { return s.Email }
func (s Staff) UserName() string  { return s.Name }
func (s Staff) UserRole() Role    { return s.StaffRole }
func (Staff) sealedUser()         {}

// Credential pairs a user with its stored password hash. Only the identity
// repository and the auth service ever see the hash.
type Credential struct {
	User         User
	PasswordHash string
}

type Job struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	Logo             string         `json:"logo"`
	Location         string         `json:"location"`
	Salary           string         `json:"salary"`
	Description      string         `json:"description"`
	Responsibilities []string       `json:"responsibilities"`
	Requirements     []string       `json:"requirements"`
	Type             EmploymentType `json:"type"`
}

// Application links a student to a job. IDs are assigned by the ledger from a
// monotonic counter, so ascending ID order is chronological order.
type Application struct {
	ID          int64  `json:"id"`
	JobID       int64  `json:"job_id"`
	StudentID   int64  `json:"student_id"`
	ResumeID    string `json:"resume_id"`
	CoverLetter string `json:"cover_letter,omitempty"`
	SubmittedAt int64  `json:"submitted_at"`
}

// Resume is the uploaded file attached to an application. Content is opaque
// to the portal; only presence is ever checked.
type Resume struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	Content  []byte `json:"-"`
}
