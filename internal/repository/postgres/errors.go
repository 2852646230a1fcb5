package postgres

import (
	"errors"

	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Friendly messages for the unique constraints declared in migrations.
var conflictMessages = map[string]string{
	"users_email_key":                 "Email already registered",
	"applications_job_id_user_id_key": "You have already applied for this job",
}

// mapError translates driver errors into the application's error taxonomy.
// entity names the row kind for NotFound messages.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(entity + " not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if msg, ok := conflictMessages[pgErr.ConstraintName]; ok {
				return apperror.Conflict(msg)
			}
			return apperror.Conflict(entity + " already exists")
		case pgForeignKeyViolation:
			return apperror.NotFound("Referenced record not found")
		}
	}
	if database.IsUnavailable(err) {
		return apperror.Unavailable(err)
	}
	return apperror.Internal(err)
}
