package usecase

import (
	"context"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo   domain.InterviewRepository
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	validate        *validator.Validate
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	validate *validator.Validate,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo:   interviewRepo,
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		validate:        validate,
	}
}

// Save appends a result to the applicant's own application. Foreign and
// missing applications are reported the same way.
func (u *interviewUsecase) Save(ctx context.Context, principal *domain.User, in domain.SaveInterviewInput) (*domain.InterviewResult, error) {
	if principal == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	app, err := u.applicationRepo.GetByID(ctx, in.ApplicationID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if app == nil || app.UserID != principal.ID {
		return nil, apperror.NotFound("Application not found or access denied")
	}

	result := &domain.InterviewResult{
		ApplicationID:        app.ID,
		JobTitle:             in.JobTitle,
		Questions:            orEmptyMaps(in.Questions),
		Answers:              orEmptyMaps(in.Answers),
		TechnicalScore:       in.TechnicalScore,
		CommunicationScore:   in.CommunicationScore,
		ConfidenceLevel:      in.ConfidenceLevel,
		OverallScore:         in.OverallScore,
		StrengthsObserved:    orEmpty(in.StrengthsObserved),
		WeaknessesObserved:   orEmpty(in.WeaknessesObserved),
		SkillsToImprove:      orEmpty(in.SkillsToImprove),
		ReadinessLevel:       in.ReadinessLevel,
		QuestionWiseAnalysis: orEmptyMaps(in.QuestionWiseAnalysis),
		QuestionScores:       orEmptyMaps(in.QuestionScores),
		HiringRecommendation: in.HiringRecommendation,
		DetailedFeedback:     in.DetailedFeedback,
	}
	if err := u.interviewRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	logger.Log.Info("Interview result saved", "interview_id", result.ID, "application_id", app.ID)
	return result, nil
}

// GetForApplication checks the application exists, then access, then
// returns its most recent result.
func (u *interviewUsecase) GetForApplication(ctx context.Context, principal *domain.User, applicationID string) (*domain.InterviewResult, error) {
	app, err := u.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if err := authz.CanViewApplication(principal, app, job); err != nil {
		return nil, err
	}
	return u.interviewRepo.GetLatestByApplicationID(ctx, app.ID)
}

func (u *interviewUsecase) ListForJob(ctx context.Context, principal *domain.User, jobID string) ([]domain.InterviewResult, error) {
	if err := authz.RequireRole(principal, "Only employers can view interview results", domain.RoleEmployer, domain.RoleAdmin); err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageJob(principal, job); err != nil {
		return nil, err
	}
	results, err := u.interviewRepo.ListByJobID(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	return orEmptyResults(results), nil
}

func (u *interviewUsecase) ListForStudent(ctx context.Context, principal *domain.User, studentID string) ([]domain.InterviewResult, error) {
	if err := authz.CanViewStudentHistory(principal, studentID); err != nil {
		return nil, err
	}
	results, err := u.interviewRepo.ListByUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return orEmptyResults(results), nil
}

func (u *interviewUsecase) Delete(ctx context.Context, principal *domain.User, id string) error {
	if principal == nil {
		return apperror.Unauthorized("Not authenticated")
	}
	result, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	app, err := u.applicationRepo.GetByID(ctx, result.ApplicationID)
	if err != nil && !isNotFound(err) {
		return err
	}
	if err := authz.CanDeleteInterview(principal, result, app); err != nil {
		return err
	}
	return u.interviewRepo.Delete(ctx, result.ID)
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orEmptyMaps(in []map[string]any) []map[string]any {
	if in == nil {
		return []map[string]any{}
	}
	return in
}

func orEmptyResults(in []domain.InterviewResult) []domain.InterviewResult {
	if in == nil {
		return []domain.InterviewResult{}
	}
	return in
}
