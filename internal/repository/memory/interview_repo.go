package memory

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type interviewRepo struct {
	s *Store
}

func NewInterviewRepository(s *Store) domain.InterviewRepository {
	return &interviewRepo{s: s}
}

func (r *interviewRepo) Create(ctx context.Context, result *domain.InterviewResult) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.applications[result.ApplicationID]; !ok {
		return apperror.NotFound("Application not found")
	}
	if result.ID == "" {
		result.ID = newID()
	}
	result.InterviewDate = r.s.now()
	r.s.interviews[result.ID] = &row[domain.InterviewResult]{seq: r.s.nextSeq(), v: *cloneInterview(*result)}
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewResult, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ir, ok := r.s.interviews[id]
	if !ok {
		return nil, apperror.NotFound("Interview result not found")
	}
	return cloneInterview(ir.v), nil
}

func (r *interviewRepo) GetLatestByApplicationID(ctx context.Context, applicationID string) (*domain.InterviewResult, error) {
	results, err := r.list(func(ir domain.InterviewResult) bool { return ir.ApplicationID == applicationID })
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperror.NotFound("Interview result not found")
	}
	return &results[0], nil
}

func (r *interviewRepo) ListByJobID(ctx context.Context, jobID string) ([]domain.InterviewResult, error) {
	return r.list(func(ir domain.InterviewResult) bool {
		a, ok := r.s.applications[ir.ApplicationID]
		return ok && a.v.JobID == jobID
	})
}

func (r *interviewRepo) ListByUserID(ctx context.Context, userID string) ([]domain.InterviewResult, error) {
	return r.list(func(ir domain.InterviewResult) bool {
		a, ok := r.s.applications[ir.ApplicationID]
		return ok && a.v.UserID == userID
	})
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.interviews[id]; !ok {
		return apperror.NotFound("Interview result not found")
	}
	delete(r.s.interviews, id)
	return nil
}

// list returns matching results newest first. match runs under the read lock.
func (r *interviewRepo) list(match func(domain.InterviewResult) bool) ([]domain.InterviewResult, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*row[domain.InterviewResult]
	for _, ir := range r.s.interviews {
		if match(ir.v) {
			matched = append(matched, &row[domain.InterviewResult]{seq: ir.seq, v: *cloneInterview(ir.v)})
		}
	}
	return newestFirst(matched), nil
}
