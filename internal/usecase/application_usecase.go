package usecase

import (
	"context"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	resumeRepo      domain.ResumeRepository
	scorer          domain.ResumeScorer
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase. With a nil scorer
// applications are stored without a match score.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	resumeRepo domain.ResumeRepository,
	scorer domain.ResumeScorer,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		resumeRepo:      resumeRepo,
		scorer:          scorer,
		validate:        validate,
	}
}

// Apply creates a PENDING application for an active job. The repository
// inserts the row and bumps the job's applicant count in one transaction.
func (uc *applicationUsecase) Apply(ctx context.Context, principal *domain.User, in domain.ApplyInput) (*domain.Application, error) {
	if err := authz.RequireRole(principal, "Only students can apply for jobs", domain.RoleStudent); err != nil {
		return nil, err
	}
	if err := validateInput(uc.validate, in); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, apperror.BadRequest("This job is no longer accepting applications")
	}

	// Fast path only; the (job_id, user_id) unique constraint decides races.
	exists, err := uc.applicationRepo.CheckExists(ctx, job.ID, principal.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("You have already applied for this job")
	}

	resumeID, err := uc.resolveResume(ctx, principal, in.ResumeID)
	if err != nil {
		return nil, err
	}

	app := &domain.Application{
		JobID:       job.ID,
		UserID:      principal.ID,
		ResumeID:    resumeID,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationStatusPending,
		MatchScore:  uc.matchScore(ctx, principal, job),
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	app.JobTitle = &job.Title
	app.CompanyName = &job.CompanyName

	logger.Log.Info("Application created", "application_id", app.ID, "job_id", job.ID, "user_id", principal.ID)
	return app, nil
}

// matchScore rates the student against the job. Scoring never blocks an
// application; failures leave the score empty.
func (uc *applicationUsecase) matchScore(ctx context.Context, principal *domain.User, job *domain.Job) *float64 {
	if uc.scorer == nil {
		return nil
	}
	match, err := uc.scorer.MatchJob(ctx, principal, job)
	if err != nil {
		logger.Log.Warn("Match scoring failed", "job_id", job.ID, "user_id", principal.ID, "error", err)
		return nil
	}
	return &match.Score
}

// resolveResume returns the explicitly chosen resume, which must belong to
// the student, or else the student's primary resume when one exists.
func (uc *applicationUsecase) resolveResume(ctx context.Context, principal *domain.User, requested *string) (*string, error) {
	if requested != nil && *requested != "" {
		resume, err := uc.resumeRepo.GetByID(ctx, *requested)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if err := authz.CanManageResume(principal, resume); err != nil {
			return nil, err
		}
		return &resume.ID, nil
	}

	primary, err := uc.resumeRepo.GetPrimary(ctx, principal.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &primary.ID, nil
}

// ListMine returns the student's applications, newest first.
func (uc *applicationUsecase) ListMine(ctx context.Context, principal *domain.User, status *domain.ApplicationStatus) ([]domain.Application, error) {
	if err := authz.RequireRole(principal, "Only students have applications", domain.RoleStudent); err != nil {
		return nil, err
	}
	apps, _, err := uc.applicationRepo.List(ctx, domain.ApplicationFilter{UserID: principal.ID, Status: status})
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (uc *applicationUsecase) Get(ctx context.Context, principal *domain.User, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := uc.optionalJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewApplication(principal, app, job); err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplicants returns the applicants of a job the principal owns.
func (uc *applicationUsecase) ListApplicants(ctx context.Context, principal *domain.User, jobID string, status *domain.ApplicationStatus) (*domain.JobApplicants, error) {
	if err := authz.RequireRole(principal, "Only employers can view applicants", domain.RoleEmployer, domain.RoleAdmin); err != nil {
		return nil, err
	}
	job, err := uc.optionalJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageJob(principal, job); err != nil {
		return nil, err
	}

	applicants, err := uc.applicationRepo.ListApplicants(ctx, job.ID, status)
	if err != nil {
		return nil, err
	}
	if applicants == nil {
		applicants = []domain.Applicant{}
	}
	return &domain.JobApplicants{
		JobID:           job.ID,
		JobTitle:        job.Title,
		TotalApplicants: len(applicants),
		Applicants:      applicants,
	}, nil
}

// UpdateStatus moves an application to any status of the enumeration.
// Terminal statuses are not sticky and the applicant count is untouched.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, principal *domain.User, id string, in domain.UpdateStatusInput) (*domain.Application, error) {
	if err := authz.RequireRole(principal, "Only employers can update application status", domain.RoleEmployer, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateInput(uc.validate, in); err != nil {
		return nil, err
	}
	status, err := domain.ParseApplicationStatus(in.Status)
	if err != nil {
		return nil, apperror.BadRequest("Invalid application status")
	}

	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := uc.optionalJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUpdateApplicationStatus(principal, app, job); err != nil {
		return nil, err
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, app.ID, status, in.Notes)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Application status updated",
		"application_id", app.ID, "from", app.Status, "to", status, "by", principal.ID)
	return updated, nil
}

// Withdraw deletes the student's own application. The repository decrements
// the job's applicant count, floored at zero, in the same transaction.
func (uc *applicationUsecase) Withdraw(ctx context.Context, principal *domain.User, id string) error {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanWithdraw(principal, app); err != nil {
		return err
	}
	if err := uc.applicationRepo.Delete(ctx, app.ID); err != nil {
		return err
	}
	logger.Log.Info("Application withdrawn", "application_id", app.ID, "job_id", app.JobID)
	return nil
}

// optionalJob loads a job, mapping NotFound to nil so the policy functions
// decide how a missing job is reported.
func (uc *applicationUsecase) optionalJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}
