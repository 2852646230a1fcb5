package memory

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type resumeRepo struct {
	s *Store
}

func NewResumeRepository(s *Store) domain.ResumeRepository {
	return &resumeRepo{s: s}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if resume.ID == "" {
		resume.ID = newID()
	}
	resume.UploadedAt = r.s.now()
	resume.IsPrimary = true
	for _, res := range r.s.resumes {
		if res.v.UserID == resume.UserID {
			resume.IsPrimary = false
			break
		}
	}
	r.s.resumes[resume.ID] = &row[domain.Resume]{seq: r.s.nextSeq(), v: *resume}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.resumes[id]
	if !ok {
		return nil, apperror.NotFound("Resume not found")
	}
	v := res.v
	return &v, nil
}

func (r *resumeRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Resume, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []*row[domain.Resume]
	for _, res := range r.s.resumes {
		if res.v.UserID == userID {
			matched = append(matched, &row[domain.Resume]{seq: res.seq, v: res.v})
		}
	}
	return newestFirst(matched), nil
}

func (r *resumeRepo) GetPrimary(ctx context.Context, userID string) (*domain.Resume, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, res := range r.s.resumes {
		if res.v.UserID == userID && res.v.IsPrimary {
			v := res.v
			return &v, nil
		}
	}
	return nil, apperror.NotFound("Resume not found")
}

func (r *resumeRepo) SetPrimary(ctx context.Context, userID, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.resumes[id]
	if !ok || res.v.UserID != userID {
		return apperror.NotFound("Resume not found")
	}
	r.s.clearPrimary(userID)
	res.v.IsPrimary = true
	return nil
}

func (r *resumeRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.resumes[id]; !ok {
		return apperror.NotFound("Resume not found")
	}
	r.s.deleteResumeCascade(id)
	// Applications keep their history but lose the dangling reference.
	for _, a := range r.s.applications {
		if a.v.ResumeID != nil && *a.v.ResumeID == id {
			a.v.ResumeID = nil
		}
	}
	return nil
}

// clearPrimary unsets the primary flag on all of a user's resumes.
// Callers hold the write lock.
func (s *Store) clearPrimary(userID string) {
	for _, res := range s.resumes {
		if res.v.UserID == userID {
			res.v.IsPrimary = false
		}
	}
}
