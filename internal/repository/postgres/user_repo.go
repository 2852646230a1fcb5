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
	"github.com/lib/pq"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, location, avatar_url, bio,
	role, status, university, major, graduation_year, gpa, skills,
	linkedin_url, github_url, portfolio_url, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Location, &u.AvatarURL, &u.Bio,
		&u.Role, &u.Status, &u.University, &u.Major, &u.GraduationYear, &u.GPA, pq.Array(&u.Skills),
		&u.LinkedinURL, &u.GithubURL, &u.PortfolioURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, location, role, status, skills)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING email, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Phone, user.Location, string(user.Role), string(user.Status), pq.Array(user.Skills),
	).Scan(&user.Email, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err, "User")
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("User not found")
	}
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "User")
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email))
	if err != nil {
		return nil, mapError(err, "User")
	}
	return user, nil
}

// Update writes profile fields only. Email, credential, role and status
// have their own paths.
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, phone = $4, location = $5, avatar_url = $6, bio = $7,
			university = $8, major = $9, graduation_year = $10, gpa = $11, skills = $12,
			linkedin_url = $13, github_url = $14, portfolio_url = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Phone, user.Location, user.AvatarURL, user.Bio,
		user.University, user.Major, user.GraduationYear, user.GPA, pq.Array(user.Skills),
		user.LinkedinURL, user.GithubURL, user.PortfolioURL,
	).Scan(&user.UpdatedAt)
	return mapError(err, "User")
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("User not found")
	}
	canonical, err := domain.ParseUserStatus(string(status))
	if err != nil {
		return apperror.BadRequest("Invalid user status")
	}
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(canonical))
	if err != nil {
		return mapError(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

// Delete removes the user. Foreign keys cascade to their jobs, applications,
// resumes and interview results; counters of jobs they applied to are
// decremented first in the same transaction.
func (r *userRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("User not found")
	}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE jobs j
			SET applicant_count = GREATEST(j.applicant_count - c.n, 0)
			FROM (SELECT job_id, COUNT(*) AS n FROM applications WHERE user_id = $1 GROUP BY job_id) c
			WHERE j.id = c.job_id`, id)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NotFound("User not found")
		}
		return nil
	})
	return mapError(err, "User")
}

func (r *userRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+clause, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "User")
	}

	query := `SELECT ` + userColumns + ` FROM users` + clause + ` ORDER BY created_at DESC` + pageClause(&args, filter.Offset, filter.Limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "User")
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, mapError(err, "User")
		}
		users = append(users, *u)
	}
	return users, total, mapError(rows.Err(), "User")
}

// pageClause appends OFFSET/LIMIT placeholders. A non-positive limit means all rows.
func pageClause(args *[]interface{}, offset, limit int) string {
	if offset < 0 {
		offset = 0
	}
	*args = append(*args, offset)
	clause := fmt.Sprintf(" OFFSET $%d", len(*args))
	if limit > 0 {
		*args = append(*args, limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(*args))
	}
	return clause
}
