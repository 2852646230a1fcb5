package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/storage"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
	files      domain.FileStorage
	maxBytes   int64
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository, files domain.FileStorage, maxBytes int64) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo: resumeRepo,
		files:      files,
		maxBytes:   maxBytes,
	}
}

// Upload stores the file body, then the metadata row. A student's first
// resume becomes primary.
func (u *resumeUsecase) Upload(ctx context.Context, principal *domain.User, in domain.UploadInput) (*domain.Resume, error) {
	if err := authz.RequireRole(principal, "Only students can upload resumes", domain.RoleStudent); err != nil {
		return nil, err
	}
	if u.maxBytes > 0 && int64(len(in.Content)) > u.maxBytes {
		return nil, apperror.New(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Maximum size is %d MB", u.maxBytes>>20), nil)
	}

	check := storage.ValidateResume(in.FileName, in.Content)
	if !check.Valid {
		return nil, apperror.BadRequest(check.Error)
	}

	resume := &domain.Resume{
		ID:       uuid.NewString(),
		UserID:   principal.ID,
		FileName: storage.SanitizeFileName(in.FileName),
		FileSize: int64(len(in.Content)),
		FileType: check.Extension,
	}
	resume.StorageKey = fmt.Sprintf("resumes/%s/%s%s", principal.ID, resume.ID, check.Extension)

	if err := u.files.Put(ctx, resume.StorageKey, bytes.NewReader(in.Content), resume.FileSize, check.ContentType); err != nil {
		return nil, storageError(err)
	}
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		if delErr := u.files.Delete(ctx, resume.StorageKey); delErr != nil {
			logger.Log.Warn("Failed to remove orphaned resume file", "key", resume.StorageKey, "error", delErr)
		}
		return nil, err
	}

	logger.Log.Info("Resume uploaded", "resume_id", resume.ID, "user_id", principal.ID, "size", resume.FileSize)
	return resume, nil
}

func (u *resumeUsecase) List(ctx context.Context, principal *domain.User) ([]domain.Resume, error) {
	if err := authz.RequireRole(principal, "Only students have resumes", domain.RoleStudent); err != nil {
		return nil, err
	}
	resumes, err := u.resumeRepo.ListByUserID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if resumes == nil {
		resumes = []domain.Resume{}
	}
	return resumes, nil
}

func (u *resumeUsecase) Get(ctx context.Context, principal *domain.User, id string) (*domain.Resume, error) {
	if principal == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	resume, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanManageResume(principal, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

// Download returns the metadata and an open body the caller must close.
func (u *resumeUsecase) Download(ctx context.Context, principal *domain.User, id string) (*domain.Resume, io.ReadCloser, error) {
	resume, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := u.files.Get(ctx, resume.StorageKey)
	if err != nil {
		return nil, nil, storageError(err)
	}
	return resume, body, nil
}

func (u *resumeUsecase) SetPrimary(ctx context.Context, principal *domain.User, id string) (*domain.Resume, error) {
	resume, err := u.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := u.resumeRepo.SetPrimary(ctx, principal.ID, resume.ID); err != nil {
		return nil, err
	}
	resume.IsPrimary = true
	return resume, nil
}

// Delete removes the row and the stored file. When the primary resume goes,
// the newest remaining one takes its place.
func (u *resumeUsecase) Delete(ctx context.Context, principal *domain.User, id string) error {
	resume, err := u.Get(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := u.resumeRepo.Delete(ctx, resume.ID); err != nil {
		return err
	}
	if err := u.files.Delete(ctx, resume.StorageKey); err != nil {
		logger.Log.Warn("Failed to delete resume file", "key", resume.StorageKey, "error", err)
	}

	if !resume.IsPrimary {
		return nil
	}
	remaining, err := u.resumeRepo.ListByUserID(ctx, principal.ID)
	if err != nil {
		logger.Log.Warn("Failed to promote primary resume", "user_id", principal.ID, "error", err)
		return nil
	}
	if len(remaining) > 0 {
		if err := u.resumeRepo.SetPrimary(ctx, principal.ID, remaining[0].ID); err != nil {
			logger.Log.Warn("Failed to promote primary resume", "user_id", principal.ID, "error", err)
		}
	}
	return nil
}

// storageError keeps AppErrors from the storage drivers and wraps the rest.
func storageError(err error) error {
	if apperror.CodeOf(err) != http.StatusInternalServerError {
		return err
	}
	return apperror.Internal(err)
}
