package memory

import (
	"context"
	"strings"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

type userRepo struct {
	s *Store
}

func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepo{s: s}
}

func (s *Store) unavailable() error {
	if s.Unavailable != nil {
		return apperror.Unavailable(s.Unavailable)
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.s.users {
		if u.v.Email == email {
			return apperror.Conflict("Email already registered")
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	user.Email = email
	now := r.s.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = &row[domain.User]{seq: r.s.nextSeq(), v: *cloneUser(*user)}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return cloneUser(u.v), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.v.Email == email {
			return cloneUser(u.v), nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[user.ID]
	if !ok {
		return apperror.NotFound("User not found")
	}
	// Identity fields are not touched by profile updates.
	next := *cloneUser(*user)
	next.Email = u.v.Email
	next.PasswordHash = u.v.PasswordHash
	next.Role = u.v.Role
	next.Status = u.v.Status
	next.CreatedAt = u.v.CreatedAt
	next.UpdatedAt = r.s.now()
	u.v = next
	user.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	canonical, err := domain.ParseUserStatus(string(status))
	if err != nil {
		return apperror.BadRequest("Invalid user status")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return apperror.NotFound("User not found")
	}
	u.v.Status = canonical
	u.v.UpdatedAt = r.s.now()
	return nil
}

// Delete removes the user with their jobs, applications and resumes. The
// applicant counters of jobs the user applied to are decremented.
func (r *userRepo) Delete(ctx context.Context, id string) error {
	if err := r.s.unavailable(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return apperror.NotFound("User not found")
	}

	for appID, a := range r.s.applications {
		if a.v.UserID == id {
			r.s.decrementApplicants(a.v.JobID, 1)
			r.s.deleteApplicationCascade(appID)
		}
	}
	for jobID, j := range r.s.jobs {
		if j.v.PostedBy == id {
			r.s.deleteJobCascade(jobID)
		}
	}
	for resumeID, res := range r.s.resumes {
		if res.v.UserID == id {
			r.s.deleteResumeCascade(resumeID)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*row[domain.User]
	for _, u := range r.s.users {
		if filter.Role != nil && u.v.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && u.v.Status != *filter.Status {
			continue
		}
		c := &row[domain.User]{seq: u.seq, v: *cloneUser(u.v)}
		matched = append(matched, c)
	}
	all := newestFirst(matched)
	return page(all, filter.Offset, filter.Limit), int64(len(all)), nil
}
