package postgres

import (
	"context"

	"careerai-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches dashboard statistics
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{
		UsersByRole:          make(map[domain.Role]int64),
		UsersByStatus:        make(map[domain.UserStatus]int64),
		ApplicationsByStatus: make(map[domain.ApplicationStatus]int64),
	}

	// Users by role and status
	rows, err := r.db.Query(ctx, `SELECT role, status, COUNT(*) FROM users GROUP BY role, status`)
	if err != nil {
		return nil, mapError(err, "Stats")
	}
	for rows.Next() {
		var (
			role   domain.Role
			status domain.UserStatus
			n      int64
		)
		if err := rows.Scan(&role, &status, &n); err != nil {
			rows.Close()
			return nil, mapError(err, "Stats")
		}
		stats.TotalUsers += n
		stats.UsersByRole[role] += n
		stats.UsersByStatus[status] += n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Stats")
	}

	// Jobs
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM jobs`,
	).Scan(&stats.TotalJobs, &stats.ActiveJobs)
	if err != nil {
		return nil, mapError(err, "Stats")
	}

	// Applications by status
	rows, err = r.db.Query(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, mapError(err, "Stats")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status domain.ApplicationStatus
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapError(err, "Stats")
		}
		stats.TotalApplications += n
		stats.ApplicationsByStatus[status] += n
	}
	return stats, mapError(rows.Err(), "Stats")
}
