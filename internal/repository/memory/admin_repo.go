package memory

import (
	"context"

	"careerai-backend/internal/domain"
)

type adminRepo struct {
	s *Store
}

func NewAdminRepository(s *Store) domain.AdminRepository {
	return &adminRepo{s: s}
}

func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if err := r.s.unavailable(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &domain.AdminStats{
		UsersByRole:          make(map[domain.Role]int64),
		UsersByStatus:        make(map[domain.UserStatus]int64),
		ApplicationsByStatus: make(map[domain.ApplicationStatus]int64),
	}
	for _, u := range r.s.users {
		stats.TotalUsers++
		stats.UsersByRole[u.v.Role]++
		stats.UsersByStatus[u.v.Status]++
	}
	for _, j := range r.s.jobs {
		stats.TotalJobs++
		if j.v.IsActive {
			stats.ActiveJobs++
		}
	}
	for _, a := range r.s.applications {
		stats.TotalApplications++
		stats.ApplicationsByStatus[a.v.Status]++
	}
	return stats, nil
}
