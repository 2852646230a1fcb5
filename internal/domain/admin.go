package domain

import "context"

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers           int64                       `json:"total_users"`
	UsersByRole          map[Role]int64              `json:"users_by_role"`
	UsersByStatus        map[UserStatus]int64        `json:"users_by_status"`
	TotalJobs            int64                       `json:"total_jobs"`
	ActiveJobs           int64                       `json:"active_jobs"`
	TotalApplications    int64                       `json:"total_applications"`
	ApplicationsByStatus map[ApplicationStatus]int64 `json:"applications_by_status"`
}

// UpdateUserStatusInput is the admin status change payload.
type UpdateUserStatusInput struct {
	Status string `json:"status" binding:"required,user_status"`
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult never returns a nil Data slice so empty pages encode as [].
func NewPaginatedResult[T any](data []T, total int64, skip, limit int) *PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	return &PaginatedResult[T]{Data: data, Total: total, Skip: skip, Limit: limit}
}

// AdminRepository defines admin-specific data access
type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	// Stats
	GetStats(ctx context.Context, principal *User) (*AdminStats, error)

	// Users
	ListUsers(ctx context.Context, principal *User, filter UserFilter) (*PaginatedResult[User], error)
	UpdateUserStatus(ctx context.Context, principal *User, userID string, status UserStatus) (*User, error)
	DeleteUser(ctx context.Context, principal *User, userID string) error
	PendingApprovals(ctx context.Context, principal *User) ([]User, error)
	ApproveEmployer(ctx context.Context, principal *User, userID string) (*User, error)

	// Jobs
	DeleteJob(ctx context.Context, principal *User, jobID string) error

	// Applications
	ListApplications(ctx context.Context, principal *User, filter ApplicationFilter) (*PaginatedResult[Application], error)
	ExportApplications(ctx context.Context, principal *User, status *ApplicationStatus) ([]byte, error)
}

// HealthStatus reports dependency reachability.
type HealthStatus struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Healthy bool              `json:"-"`
}

type HealthUsecase interface {
	Check(ctx context.Context) *HealthStatus
}
