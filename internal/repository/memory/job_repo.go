package memory

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type jobRepo struct {
	s *Store
}

func NewJobRepository(s *Store) domain.JobRepository {
	return &jobRepo{s: s}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if job.ID == "" {
		job.ID = newID()
	}
	now := r.s.now()
	job.PostedDate = now
	job.UpdatedAt = now
	job.ApplicantCount = 0
	r.s.jobs[job.ID] = &row[domain.Job]{seq: r.s.nextSeq(), v: *cloneJob(*job)}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, apperror.NotFound("Job not found")
	}
	return cloneJob(j.v), nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*row[domain.Job]
	for _, j := range r.s.jobs {
		if filter.IsActive != nil && j.v.IsActive != *filter.IsActive {
			continue
		}
		if filter.PostedBy != "" && j.v.PostedBy != filter.PostedBy {
			continue
		}
		if filter.JobType != nil && j.v.JobType != *filter.JobType {
			continue
		}
		if filter.Location != "" && !containsFold(j.v.Location, filter.Location) {
			continue
		}
		if filter.Keyword != "" && !containsFold(j.v.Title, filter.Keyword) && !containsFold(j.v.Description, filter.Keyword) {
			continue
		}
		matched = append(matched, &row[domain.Job]{seq: j.seq, v: *cloneJob(j.v)})
	}
	all := newestFirst(matched)
	return page(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

// Update writes the editable fields. The applicant counter and owner are kept.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[job.ID]
	if !ok {
		return apperror.NotFound("Job not found")
	}
	next := *cloneJob(*job)
	next.ApplicantCount = j.v.ApplicantCount
	next.PostedBy = j.v.PostedBy
	next.PostedDate = j.v.PostedDate
	next.UpdatedAt = r.s.now()
	j.v = next
	job.ApplicantCount = next.ApplicantCount
	job.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return apperror.NotFound("Job not found")
	}
	r.s.deleteJobCascade(id)
	return nil
}

// deleteJobCascade removes a job with its applications and their interview
// results. Analyses against the job keep their row without the job reference.
// Callers hold the write lock.
func (s *Store) deleteJobCascade(id string) {
	for appID, a := range s.applications {
		if a.v.JobID == id {
			s.deleteApplicationCascade(appID)
		}
	}
	for _, a := range s.analyses {
		if a.v.JobID != nil && *a.v.JobID == id {
			a.v.JobID = nil
		}
	}
	delete(s.jobs, id)
}
