package postgres

import (
	"context"
	"fmt"
	"strings"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationSelect = `
	SELECT a.id, a.job_id, a.user_id, a.resume_id, a.cover_letter, a.status, a.match_score,
		a.employer_notes, a.applied_date, a.updated_at, j.title, j.company_name
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.UserID, &a.ResumeID, &a.CoverLetter, &a.Status, &a.MatchScore,
		&a.EmployerNotes, &a.AppliedDate, &a.UpdatedAt, &a.JobTitle, &a.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the application and increments the job's applicant count
// in one transaction. The (job_id, user_id) constraint rejects duplicates.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if _, err := uuid.Parse(app.JobID); err != nil {
		return apperror.NotFound("Job not found")
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO applications (id, job_id, user_id, resume_id, cover_letter, status, match_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING applied_date, updated_at`,
			app.ID, app.JobID, app.UserID, app.ResumeID, app.CoverLetter, string(app.Status), app.MatchScore,
		).Scan(&app.AppliedDate, &app.UpdatedAt)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `UPDATE jobs SET applicant_count = applicant_count + 1 WHERE id = $1`, app.JobID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NotFound("Job not found")
		}
		return nil
	})
	return mapError(err, "Application")
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	app, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Application")
	}
	return app, nil
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`, jobID, userID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "Application")
	}
	return exists, nil
}

func (r *applicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		where = append(where, fmt.Sprintf("a.job_id = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("a.user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications a`+clause, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "Application")
	}

	query := applicationSelect + clause + ` ORDER BY a.applied_date DESC` + pageClause(&args, filter.Offset, filter.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "Application")
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, mapError(err, "Application")
		}
		apps = append(apps, *a)
	}
	return apps, total, mapError(rows.Err(), "Application")
}

// ListApplicants returns a job's applications joined with applicant identity.
func (r *applicationRepo) ListApplicants(ctx context.Context, jobID string, status *domain.ApplicationStatus) ([]domain.Applicant, error) {
	query := `
		SELECT a.id, u.id, u.first_name || ' ' || u.last_name, u.email, u.avatar_url,
			a.status, a.match_score, a.resume_id, a.applied_date
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.job_id = $1`
	args := []interface{}{jobID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND a.status = $2`
	}
	query += ` ORDER BY a.applied_date DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "Application")
	}
	defer rows.Close()

	applicants := []domain.Applicant{}
	for rows.Next() {
		var ap domain.Applicant
		if err := rows.Scan(
			&ap.ApplicationID, &ap.UserID, &ap.Name, &ap.Email, &ap.AvatarURL,
			&ap.Status, &ap.MatchScore, &ap.ResumeID, &ap.AppliedDate,
		); err != nil {
			return nil, mapError(err, "Application")
		}
		applicants = append(applicants, ap)
	}
	return applicants, mapError(rows.Err(), "Application")
}

// UpdateStatus never touches the job's applicant count.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, notes *string) (*domain.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $2, employer_notes = COALESCE($3, employer_notes), updated_at = NOW()
		WHERE id = $1`, id, string(status), notes)
	if err != nil {
		return nil, mapError(err, "Application")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NotFound("Application not found")
	}
	return r.GetByID(ctx, id)
}

// Delete removes the application and decrements the job's applicant count,
// floored at zero, in one transaction.
func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Application not found")
	}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var jobID string
		if err := tx.QueryRow(ctx, `DELETE FROM applications WHERE id = $1 RETURNING job_id`, id).Scan(&jobID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE jobs SET applicant_count = GREATEST(applicant_count - 1, 0) WHERE id = $1`, jobID)
		return err
	})
	return mapError(err, "Application")
}
