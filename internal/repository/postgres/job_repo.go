package postgres

import (
	"context"
	"fmt"
	"strings"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, title, company_name, company_description, description, location, job_type,
	salary_range, requirements, logo_url, cover_url, posted_by, applicant_count, is_active,
	posted_date, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.CompanyName, &j.CompanyDescription, &j.Description, &j.Location, &j.JobType,
		&j.SalaryRange, pq.Array(&j.Requirements), &j.LogoURL, &j.CoverURL, &j.PostedBy, &j.ApplicantCount, &j.IsActive,
		&j.PostedDate, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	query := `
		INSERT INTO jobs (id, title, company_name, company_description, description, location, job_type,
			salary_range, requirements, logo_url, cover_url, posted_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING applicant_count, posted_date, updated_at`

	err := r.db.QueryRow(ctx, query,
		job.ID, job.Title, job.CompanyName, job.CompanyDescription, job.Description, job.Location, string(job.JobType),
		job.SalaryRange, pq.Array(job.Requirements), job.LogoURL, job.CoverURL, job.PostedBy, job.IsActive,
	).Scan(&job.ApplicantCount, &job.PostedDate, &job.UpdatedAt)
	return mapError(err, "Job")
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Job")
	}
	return job, nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.IsActive != nil {
		add("is_active = $%d", *filter.IsActive)
	}
	if filter.PostedBy != "" {
		add("posted_by = $%d", filter.PostedBy)
	}
	if filter.JobType != nil {
		add("job_type = $%d", string(*filter.JobType))
	}
	if filter.Location != "" {
		add("location ILIKE $%d", "%"+escapeLike(filter.Location)+"%")
	}
	if filter.Keyword != "" {
		args = append(args, "%"+escapeLike(filter.Keyword)+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+clause, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "Job")
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + clause + ` ORDER BY posted_date DESC` + pageClause(&args, filter.Offset, filter.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "Job")
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, mapError(err, "Job")
		}
		jobs = append(jobs, *j)
	}
	return jobs, total, mapError(rows.Err(), "Job")
}

// Update writes the editable fields. applicant_count, posted_by and
// posted_date are never written here.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET
			title = $2, company_name = $3, company_description = $4, description = $5, location = $6,
			job_type = $7, salary_range = $8, requirements = $9, logo_url = $10, cover_url = $11,
			is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING applicant_count, updated_at`

	err := r.db.QueryRow(ctx, query,
		job.ID, job.Title, job.CompanyName, job.CompanyDescription, job.Description, job.Location,
		string(job.JobType), job.SalaryRange, pq.Array(job.Requirements), job.LogoURL, job.CoverURL,
		job.IsActive,
	).Scan(&job.ApplicantCount, &job.UpdatedAt)
	return mapError(err, "Job")
}

// Delete relies on ON DELETE CASCADE for applications and interview results.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Job not found")
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "Job")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Job not found")
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
