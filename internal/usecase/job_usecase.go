package usecase

import (
	"context"
	"strings"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, principal *domain.User, in domain.JobInput) (*domain.Job, error) {
	if err := authz.RequireRole(principal, "Only employers can post jobs", domain.RoleEmployer); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}
	jobType, err := domain.ParseJobType(in.JobType)
	if err != nil {
		return nil, apperror.BadRequest("Invalid job type")
	}

	requirements := in.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	job := &domain.Job{
		Title:              strings.TrimSpace(in.Title),
		CompanyName:        strings.TrimSpace(in.CompanyName),
		CompanyDescription: in.CompanyDescription,
		Description:        in.Description,
		Location:           strings.TrimSpace(in.Location),
		JobType:            jobType,
		SalaryRange:        in.SalaryRange,
		Requirements:       requirements,
		LogoURL:            in.LogoURL,
		CoverURL:           in.CoverURL,
		PostedBy:           principal.ID,
		IsActive:           true,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.Log.Info("Job created", "job_id", job.ID, "posted_by", principal.ID)
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return u.jobRepo.GetByID(ctx, id)
}

// ListJobs is the public board. It shows active jobs unless the filter says
// otherwise, and degrades to an empty page when storage is unreachable.
func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.PaginatedResult[domain.Job], error) {
	filter.Offset, filter.Limit = normalizePage(filter.Offset, filter.Limit)
	if filter.IsActive == nil {
		active := true
		filter.IsActive = &active
	}

	jobs, total, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		if isUnavailable(err) {
			logger.Log.Warn("Job listing degraded, storage unavailable", "error", err)
			return domain.NewPaginatedResult[domain.Job](nil, 0, filter.Offset, filter.Limit), nil
		}
		return nil, err
	}
	return domain.NewPaginatedResult(jobs, total, filter.Offset, filter.Limit), nil
}

// ListMyJobs returns every job the employer posted, open or closed.
func (u *jobUsecase) ListMyJobs(ctx context.Context, principal *domain.User, offset, limit int) (*domain.PaginatedResult[domain.Job], error) {
	if err := authz.RequireRole(principal, "Only employers have job postings", domain.RoleEmployer); err != nil {
		return nil, err
	}
	offset, limit = normalizePage(offset, limit)

	jobs, total, err := u.jobRepo.List(ctx, domain.JobFilter{PostedBy: principal.ID, Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(jobs, total, offset, limit), nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, principal *domain.User, id string, patch domain.JobPatch) (*domain.Job, error) {
	if err := validateInput(u.validate, patch); err != nil {
		return nil, err
	}
	job, err := u.loadManaged(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(job); err != nil {
		return nil, apperror.BadRequest("Invalid job type")
	}
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes the job with its applications and interview results.
func (u *jobUsecase) DeleteJob(ctx context.Context, principal *domain.User, id string) error {
	job, err := u.loadManaged(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, job.ID); err != nil {
		return err
	}
	logger.Log.Info("Job deleted", "job_id", job.ID, "by", principal.ID)
	return nil
}

// CloseJob stops the job from accepting new applications.
func (u *jobUsecase) CloseJob(ctx context.Context, principal *domain.User, id string) (*domain.Job, error) {
	job, err := u.loadManaged(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return job, nil
	}
	job.IsActive = false
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// loadManaged fetches a job the principal may modify. A missing job is
// reported before any ownership failure.
func (u *jobUsecase) loadManaged(ctx context.Context, principal *domain.User, id string) (*domain.Job, error) {
	if principal == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageJob(principal, job); err != nil {
		return nil, err
	}
	return job, nil
}
