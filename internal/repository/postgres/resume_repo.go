package postgres

import (
	"context"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resumeColumns = `id, user_id, file_name, storage_key, file_size, file_type, is_primary, uploaded_at`

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var res domain.Resume
	if err := row.Scan(
		&res.ID, &res.UserID, &res.FileName, &res.StorageKey, &res.FileSize, &res.FileType, &res.IsPrimary, &res.UploadedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}

// Create inserts the resume, primary when the user has no other. The user row
// is locked so concurrent first uploads cannot both claim primary.
func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, resume.UserID); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			INSERT INTO resumes (id, user_id, file_name, storage_key, file_size, file_type, is_primary)
			VALUES ($1, $2, $3, $4, $5, $6, NOT EXISTS (SELECT 1 FROM resumes WHERE user_id = $2))
			RETURNING is_primary, uploaded_at`,
			resume.ID, resume.UserID, resume.FileName, resume.StorageKey, resume.FileSize, resume.FileType,
		).Scan(&resume.IsPrimary, &resume.UploadedAt)
	})
	return mapError(err, "Resume")
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("Resume not found")
	}
	res, err := scanResume(r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Resume")
	}
	return res, nil
}

func (r *resumeRepo) ListByUserID(ctx context.Context, userID string) ([]domain.Resume, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, mapError(err, "Resume")
	}
	defer rows.Close()

	resumes := []domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, mapError(err, "Resume")
		}
		resumes = append(resumes, *res)
	}
	return resumes, mapError(rows.Err(), "Resume")
}

func (r *resumeRepo) GetPrimary(ctx context.Context, userID string) (*domain.Resume, error) {
	res, err := scanResume(r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 AND is_primary`, userID))
	if err != nil {
		return nil, mapError(err, "Resume")
	}
	return res, nil
}

func (r *resumeRepo) SetPrimary(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Resume not found")
	}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var found string
		if err := tx.QueryRow(ctx,
			`SELECT id FROM resumes WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID,
		).Scan(&found); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE resumes SET is_primary = FALSE WHERE user_id = $1 AND is_primary`, userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE resumes SET is_primary = TRUE WHERE id = $1`, id)
		return err
	})
	return mapError(err, "Resume")
}

// Delete relies on ON DELETE SET NULL for applications.resume_id.
func (r *resumeRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Resume not found")
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "Resume")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Resume not found")
	}
	return nil
}
