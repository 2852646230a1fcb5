package usecase

import (
	"context"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/security"
	"careerai-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type userUsecase struct {
	userRepo   domain.UserRepository
	resumeRepo domain.ResumeRepository
	files      domain.FileStorage
	validate   *validator.Validate
	secLog     *security.SecurityLogger
}

func NewUserUsecase(
	userRepo domain.UserRepository,
	resumeRepo domain.ResumeRepository,
	files domain.FileStorage,
	validate *validator.Validate,
	secLog *security.SecurityLogger,
) domain.UserUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &userUsecase{
		userRepo:   userRepo,
		resumeRepo: resumeRepo,
		files:      files,
		validate:   validate,
		secLog:     secLog,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, principal *domain.User) (*domain.User, error) {
	if principal == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	return u.userRepo.GetByID(ctx, principal.ID)
}

// UpdateProfile applies the patch to the stored record. Role, status, email
// and credential are not part of UserPatch and never change here.
func (u *userUsecase) UpdateProfile(ctx context.Context, principal *domain.User, patch domain.UserPatch) (*domain.User, error) {
	if principal == nil {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	if err := validateInput(u.validate, patch); err != nil {
		return nil, err
	}
	if patch.Phone != nil && *patch.Phone != "" {
		phone, err := validation.NormalizePhone(*patch.Phone)
		if err != nil {
			return nil, apperror.BadRequest("Phone number is not valid")
		}
		patch.Phone = &phone
	}

	user, err := u.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	patch.Apply(user)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) GetPublicProfile(ctx context.Context, id string) (*domain.PublicProfile, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (u *userUsecase) DeleteAccount(ctx context.Context, principal *domain.User, id string) error {
	if principal == nil {
		return apperror.Unauthorized("Not authenticated")
	}
	target, err := u.userRepo.GetByID(ctx, id)
	if err != nil && !isNotFound(err) {
		return err
	}
	if err := authz.CanDeleteAccount(principal, target); err != nil {
		return err
	}
	if err := removeAccount(ctx, u.userRepo, u.resumeRepo, u.files, target.ID); err != nil {
		return err
	}

	logger.Log.Info("User deleted", "user_id", target.ID, "by", principal.ID)
	event := security.EventAccountClosed
	if principal.ID != target.ID {
		event = security.EventUserDeleted
	}
	u.secLog.LogAdminAction(ctx, event, principal.ID, target.ID,
		map[string]interface{}{"role": string(target.Role)})
	return nil
}

// removeAccount deletes the user with everything they own, then their stored
// resume files. File removal failures are logged, not returned.
func removeAccount(ctx context.Context, users domain.UserRepository, resumes domain.ResumeRepository, files domain.FileStorage, userID string) error {
	owned, err := resumes.ListByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := users.Delete(ctx, userID); err != nil {
		return err
	}
	if files == nil {
		return nil
	}
	for _, r := range owned {
		if err := files.Delete(ctx, r.StorageKey); err != nil {
			logger.Log.Warn("Failed to delete resume file", "key", r.StorageKey, "error", err)
		}
	}
	return nil
}
