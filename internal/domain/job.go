package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// JobType is the closed set of employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeRemote     JobType = "Remote"
	JobTypeInternship JobType = "Internship"
)

var jobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote, JobTypeInternship}

// ParseJobType accepts any casing and returns the canonical job type.
func ParseJobType(s string) (JobType, error) {
	s = strings.TrimSpace(s)
	for _, jt := range jobTypes {
		if strings.EqualFold(s, string(jt)) {
			return jt, nil
		}
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// Job is a posting owned by exactly one employer. ApplicantCount is only
// moved by the application repository, never recomputed.
type Job struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription *string   `json:"company_description,omitempty"`
	Description        string    `json:"description"`
	Location           string    `json:"location"`
	JobType            JobType   `json:"job_type"`
	SalaryRange        *string   `json:"salary_range,omitempty"`
	Requirements       []string  `json:"requirements"`
	LogoURL            *string   `json:"logo_url,omitempty"`
	CoverURL           *string   `json:"cover_url,omitempty"`
	PostedBy           string    `json:"posted_by"`
	ApplicantCount     int       `json:"applicant_count"`
	IsActive           bool      `json:"is_active"`
	PostedDate         time.Time `json:"posted_date"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// JobInput is the creation payload.
type JobInput struct {
	Title              string   `json:"title" binding:"required,min=3,max=200"`
	CompanyName        string   `json:"company_name" binding:"required,min=1,max=200"`
	CompanyDescription *string  `json:"company_description" binding:"omitempty,max=5000"`
	Description        string   `json:"description" binding:"required,min=10"`
	Location           string   `json:"location" binding:"required,max=200"`
	JobType            string   `json:"job_type" binding:"required,job_type"`
	SalaryRange        *string  `json:"salary_range" binding:"omitempty,max=100"`
	Requirements       []string `json:"requirements" binding:"omitempty,max=50,dive,min=1,max=500"`
	LogoURL            *string  `json:"logo_url" binding:"omitempty,url"`
	CoverURL           *string  `json:"cover_url" binding:"omitempty,url"`
}

// JobPatch lists the fields an owner may change. Nil fields are left untouched.
type JobPatch struct {
	Title              *string   `json:"title" binding:"omitempty,min=3,max=200"`
	CompanyName        *string   `json:"company_name" binding:"omitempty,min=1,max=200"`
	CompanyDescription *string   `json:"company_description" binding:"omitempty,max=5000"`
	Description        *string   `json:"description" binding:"omitempty,min=10"`
	Location           *string   `json:"location" binding:"omitempty,max=200"`
	JobType            *string   `json:"job_type" binding:"omitempty,job_type"`
	SalaryRange        *string   `json:"salary_range" binding:"omitempty,max=100"`
	Requirements       *[]string `json:"requirements" binding:"omitempty,max=50,dive,min=1,max=500"`
	LogoURL            *string   `json:"logo_url" binding:"omitempty,url"`
	CoverURL           *string   `json:"cover_url" binding:"omitempty,url"`
	IsActive           *bool     `json:"is_active"`
}

// Apply copies the set fields onto job. An unknown job type leaves job untouched.
func (p JobPatch) Apply(job *Job) error {
	if p.JobType != nil {
		jt, err := ParseJobType(*p.JobType)
		if err != nil {
			return err
		}
		job.JobType = jt
	}
	setString(&job.Title, p.Title)
	setString(&job.CompanyName, p.CompanyName)
	setOptional(&job.CompanyDescription, p.CompanyDescription)
	setString(&job.Description, p.Description)
	setString(&job.Location, p.Location)
	setOptional(&job.SalaryRange, p.SalaryRange)
	if p.Requirements != nil {
		job.Requirements = append([]string(nil), (*p.Requirements)...)
	}
	setOptional(&job.LogoURL, p.LogoURL)
	setOptional(&job.CoverURL, p.CoverURL)
	if p.IsActive != nil {
		job.IsActive = *p.IsActive
	}
	return nil
}

// JobFilter narrows job listings. A nil IsActive matches both states.
type JobFilter struct {
	Location string
	JobType  *JobType
	Keyword  string
	IsActive *bool
	PostedBy string
	Offset   int
	Limit    int
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// Delete removes the job together with its applications and interview results.
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, principal *User, in JobInput) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) (*PaginatedResult[Job], error)
	ListMyJobs(ctx context.Context, principal *User, offset, limit int) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, principal *User, id string, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, principal *User, id string) error
	CloseJob(ctx context.Context, principal *User, id string) (*Job, error)
}
