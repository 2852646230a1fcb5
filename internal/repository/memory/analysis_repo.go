package memory

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type analysisRepo struct {
	s *Store
}

func NewResumeAnalysisRepository(s *Store) domain.ResumeAnalysisRepository {
	return &analysisRepo{s: s}
}

func (r *analysisRepo) Create(ctx context.Context, analysis *domain.ResumeAnalysis) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.resumes[analysis.ResumeID]; !ok {
		return apperror.NotFound("Resume not found")
	}
	if analysis.JobID != nil {
		if _, ok := r.s.jobs[*analysis.JobID]; !ok {
			return apperror.NotFound("Job not found")
		}
	}
	if analysis.ID == "" {
		analysis.ID = newID()
	}
	analysis.AnalyzedAt = r.s.now()
	r.s.analyses[analysis.ID] = &row[domain.ResumeAnalysis]{seq: r.s.nextSeq(), v: *cloneAnalysis(*analysis)}
	return nil
}

func (r *analysisRepo) ListByResumeID(ctx context.Context, resumeID string) ([]domain.ResumeAnalysis, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*row[domain.ResumeAnalysis]
	for _, a := range r.s.analyses {
		if a.v.ResumeID == resumeID {
			matched = append(matched, &row[domain.ResumeAnalysis]{seq: a.seq, v: *cloneAnalysis(a.v)})
		}
	}
	return newestFirst(matched), nil
}
