package memory

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type applicationRepo struct {
	s *Store
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(s *Store) domain.ApplicationRepository {
	return &applicationRepo{s: s}
}

// Create inserts the application and bumps the job's counter under one lock.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.jobs[app.JobID]
	if !ok {
		return apperror.NotFound("Job not found")
	}
	for _, a := range r.s.applications {
		if a.v.JobID == app.JobID && a.v.UserID == app.UserID {
			return apperror.Conflict("You have already applied for this job")
		}
	}

	if app.ID == "" {
		app.ID = newID()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}
	now := r.s.now()
	app.AppliedDate = now
	app.UpdatedAt = now

	stored := *app
	stored.JobTitle, stored.CompanyName = nil, nil
	r.s.applications[app.ID] = &row[domain.Application]{seq: r.s.nextSeq(), v: stored}
	job.v.ApplicantCount++
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, apperror.NotFound("Application not found")
	}
	return r.s.joined(a.v), nil
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID, userID string) (bool, error) {
	if err := r.s.unavailable(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.applications {
		if a.v.JobID == jobID && a.v.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*row[domain.Application]
	for _, a := range r.s.applications {
		if filter.JobID != "" && a.v.JobID != filter.JobID {
			continue
		}
		if filter.UserID != "" && a.v.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && a.v.Status != *filter.Status {
			continue
		}
		matched = append(matched, &row[domain.Application]{seq: a.seq, v: *r.s.joined(a.v)})
	}
	all := newestFirst(matched)
	return page(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

func (r *applicationRepo) ListApplicants(ctx context.Context, jobID string, status *domain.ApplicationStatus) ([]domain.Applicant, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*row[domain.Applicant]
	for _, a := range r.s.applications {
		if a.v.JobID != jobID {
			continue
		}
		if status != nil && a.v.Status != *status {
			continue
		}
		u, ok := r.s.users[a.v.UserID]
		if !ok {
			continue
		}
		matched = append(matched, &row[domain.Applicant]{seq: a.seq, v: domain.Applicant{
			ApplicationID: a.v.ID,
			UserID:        u.v.ID,
			Name:          u.v.FullName(),
			Email:         u.v.Email,
			AvatarURL:     u.v.AvatarURL,
			Status:        a.v.Status,
			MatchScore:    a.v.MatchScore,
			ResumeID:      a.v.ResumeID,
			AppliedDate:   a.v.AppliedDate,
		}})
	}
	return newestFirst(matched), nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, apperror.NotFound("Application not found")
	}
	a.v.Status = status
	if notes != nil {
		n := *notes
		a.v.EmployerNotes = &n
	}
	a.v.UpdatedAt = r.s.now()
	return r.s.joined(a.v), nil
}

// Delete removes the application and decrements the job's counter, floored at zero.
func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return apperror.NotFound("Application not found")
	}
	r.s.deleteApplicationCascade(id)
	r.s.decrementApplicants(a.v.JobID, 1)
	return nil
}

// joined copies an application and fills the job title and company name.
// Callers hold at least the read lock.
func (s *Store) joined(a domain.Application) *domain.Application {
	if j, ok := s.jobs[a.JobID]; ok {
		title, company := j.v.Title, j.v.CompanyName
		a.JobTitle = &title
		a.CompanyName = &company
	}
	return &a
}
