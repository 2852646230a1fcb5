package usecase

import (
	"context"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
)

type analysisUsecase struct {
	analysisRepo domain.ResumeAnalysisRepository
	resumeRepo   domain.ResumeRepository
	jobRepo      domain.JobRepository
	scorer       domain.ResumeScorer
}

// NewAnalysisUsecase falls back to the skill scorer when scorer is nil.
func NewAnalysisUsecase(
	analysisRepo domain.ResumeAnalysisRepository,
	resumeRepo domain.ResumeRepository,
	jobRepo domain.JobRepository,
	scorer domain.ResumeScorer,
) domain.AnalysisUsecase {
	if scorer == nil {
		scorer = NewSkillScorer()
	}
	return &analysisUsecase{
		analysisRepo: analysisRepo,
		resumeRepo:   resumeRepo,
		jobRepo:      jobRepo,
		scorer:       scorer,
	}
}

// AnalyzeResume scores the student's profile together with the resume and
// stores the result.
func (u *analysisUsecase) AnalyzeResume(ctx context.Context, principal *domain.User, resumeID string) (*domain.ResumeAnalysis, error) {
	resume, err := u.ownedResume(ctx, principal, resumeID)
	if err != nil {
		return nil, err
	}
	profile, err := u.scorer.ScoreProfile(ctx, principal, resume)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	analysis := &domain.ResumeAnalysis{
		ResumeID:        resume.ID,
		OverallScore:    profile.Score,
		Strengths:       profile.Strengths,
		Weaknesses:      profile.Weaknesses,
		MissingSkills:   profile.MissingSkills,
		Recommendations: profile.Recommendations,
		AnalysisVersion: u.scorer.Version(),
	}
	if err := u.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}
	logger.Log.Info("Resume analyzed", "resume_id", resume.ID, "score", analysis.OverallScore)
	return analysis, nil
}

// MatchJob stores an analysis of the resume against one job. The overall
// score is the profile score; the match details come from the job.
func (u *analysisUsecase) MatchJob(ctx context.Context, principal *domain.User, resumeID, jobID string) (*domain.ResumeAnalysis, error) {
	resume, err := u.ownedResume(ctx, principal, resumeID)
	if err != nil {
		return nil, err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	profile, err := u.scorer.ScoreProfile(ctx, principal, resume)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}
	match, err := u.scorer.MatchJob(ctx, principal, job)
	if err != nil {
		return nil, apperror.Unavailable(err)
	}

	score := match.Score
	analysis := &domain.ResumeAnalysis{
		ResumeID:        resume.ID,
		JobID:           &job.ID,
		OverallScore:    profile.Score,
		MatchScore:      &score,
		Strengths:       match.Strengths,
		Weaknesses:      match.Weaknesses,
		MissingSkills:   match.MissingSkills,
		Recommendations: match.Recommendations,
		AnalysisVersion: u.scorer.Version(),
	}
	if err := u.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}
	logger.Log.Info("Resume matched", "resume_id", resume.ID, "job_id", job.ID, "match_score", score)
	return analysis, nil
}

func (u *analysisUsecase) History(ctx context.Context, principal *domain.User, resumeID string) (*domain.AnalysisHistory, error) {
	resume, err := u.ownedResume(ctx, principal, resumeID)
	if err != nil {
		return nil, err
	}
	analyses, err := u.analysisRepo.ListByResumeID(ctx, resume.ID)
	if err != nil {
		return nil, err
	}
	if analyses == nil {
		analyses = []domain.ResumeAnalysis{}
	}
	return &domain.AnalysisHistory{
		ResumeID:      resume.ID,
		TotalAnalyses: len(analyses),
		Analyses:      analyses,
	}, nil
}

// ownedResume loads the resume before checking that the student owns it.
func (u *analysisUsecase) ownedResume(ctx context.Context, principal *domain.User, id string) (*domain.Resume, error) {
	if err := authz.RequireRole(principal, "Only students can analyze resumes", domain.RoleStudent); err != nil {
		return nil, err
	}
	resume, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if err := authz.CanManageResume(principal, resume); err != nil {
		return nil, err
	}
	return resume, nil
}
