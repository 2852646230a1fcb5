package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ApplicationStatus is the closed set of application states. Values are
// stored and serialized uppercase; parsing is case-insensitive.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "PENDING"
	ApplicationStatusApplied   ApplicationStatus = "APPLIED"
	ApplicationStatusReviewing ApplicationStatus = "REVIEWING"
	ApplicationStatusInterview ApplicationStatus = "INTERVIEW"
	ApplicationStatusOffer     ApplicationStatus = "OFFER"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
)

// ApplicationStatuses lists every status in lifecycle order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusApplied,
	ApplicationStatusReviewing,
	ApplicationStatusInterview,
	ApplicationStatusOffer,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

// ParseApplicationStatus maps "interview", "Interview" and "INTERVIEW" to the
// same value and rejects anything outside the enumeration.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ApplicationStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTerminal reports whether the status ends the hiring flow. Terminal
// applications may still be moved by the employer.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application links one student to one job. (JobID, UserID) is unique.
type Application struct {
	ID            string            `json:"id"`
	JobID         string            `json:"job_id"`
	UserID        string            `json:"user_id"`
	ResumeID      *string           `json:"resume_id,omitempty"`
	CoverLetter   *string           `json:"cover_letter,omitempty"`
	Status        ApplicationStatus `json:"status"`
	MatchScore    *float64          `json:"match_score,omitempty"`
	EmployerNotes *string           `json:"employer_notes,omitempty"`
	AppliedDate   time.Time         `json:"applied_date"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Joined data for list responses
	JobTitle    *string `json:"job_title,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// Applicant is an application joined with its applicant's public profile.
type Applicant struct {
	ApplicationID string            `json:"application_id"`
	UserID        string            `json:"user_id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	AvatarURL     *string           `json:"avatar_url,omitempty"`
	Status        ApplicationStatus `json:"status"`
	MatchScore    *float64          `json:"match_score,omitempty"`
	ResumeID      *string           `json:"resume_id,omitempty"`
	AppliedDate   time.Time         `json:"applied_date"`
}

// JobApplicants is the employer view of a job's applicants.
type JobApplicants struct {
	JobID           string      `json:"job_id"`
	JobTitle        string      `json:"job_title"`
	TotalApplicants int         `json:"total_applicants"`
	Applicants      []Applicant `json:"applicants"`
}

// ApplyInput is the payload of a new application.
type ApplyInput struct {
	JobID       string  `json:"job_id" binding:"required"`
	ResumeID    *string `json:"resume_id"`
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=5000"`
}

// UpdateStatusInput is the employer's status change payload.
type UpdateStatusInput struct {
	Status string  `json:"status" binding:"required,app_status"`
	Notes  *string `json:"notes" binding:"omitempty,max=5000"`
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	JobID  string
	UserID string
	Status *ApplicationStatus
	Offset int
	Limit  int
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create inserts the application and increments the job's applicant count
	// in one transaction. A duplicate (job, user) pair yields a Conflict.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	CheckExists(ctx context.Context, jobID, userID string) (bool, error)
	List(ctx context.Context, filter ApplicationFilter) ([]Application, int64, error)
	ListApplicants(ctx context.Context, jobID string, status *ApplicationStatus) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus, notes *string) (*Application, error)
	// Delete removes the application and decrements the job's applicant count,
	// floored at zero, in one transaction.
	Delete(ctx context.Context, id string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, principal *User, in ApplyInput) (*Application, error)
	ListMine(ctx context.Context, principal *User, status *ApplicationStatus) ([]Application, error)
	Withdraw(ctx context.Context, principal *User, id string) error

	// Shared
	Get(ctx context.Context, principal *User, id string) (*Application, error)

	// Employer operations
	ListApplicants(ctx context.Context, principal *User, jobID string, status *ApplicationStatus) (*JobApplicants, error)
	UpdateStatus(ctx context.Context, principal *User, id string, in UpdateStatusInput) (*Application, error)
}
