package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/auth"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/security"
	"careerai-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const invalidCredentials = "Invalid email or password"

// LoginGuard counts failed logins and blocks repeat offenders.
// *security.LoginTracker implements it.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   *auth.Hasher
	tokens   *auth.TokenService
	guard    LoginGuard
	secLog   *security.SecurityLogger
	validate *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.TokenService,
	guard LoginGuard,
	secLog *security.SecurityLogger,
	validate *validator.Validate,
) domain.AuthUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		guard:    guard,
		secLog:   secLog,
		validate: validate,
	}
}

func (u *authUsecase) Signup(ctx context.Context, in domain.SignupInput) (*domain.TokenPair, error) {
	if err := validateInput(u.validate, in); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil || role == domain.RoleAdmin {
		return nil, apperror.BadRequest("Role must be STUDENT or EMPLOYER")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("Email already registered")
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) {
			return nil, apperror.BadRequest("Password cannot be empty")
		}
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		Status:       domain.UserStatusActive,
		Location:     in.Location,
		Skills:       []string{},
	}
	// Employers wait for admin approval
	if role == domain.RoleEmployer {
		user.Status = domain.UserStatusPending
	}
	if in.Phone != nil && *in.Phone != "" {
		phone, err := validation.NormalizePhone(*in.Phone)
		if err != nil {
			return nil, apperror.BadRequest("Phone number is not valid")
		}
		user.Phone = &phone
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("User signed up", "user_id", user.ID, "role", user.Role)
	return u.issuePair(user.ID)
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, email, in.ClientIP)
		if err != nil {
			logger.Log.Warn("Login block check failed", "error", err)
		}
		if blocked {
			u.secLog.LogLoginBlocked(ctx, email, in.ClientIP, in.UserAgent, in.RequestID)
			return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, u.loginFailed(ctx, email, in)
		}
		return nil, err
	}
	if !u.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, u.loginFailed(ctx, email, in)
	}

	if user.Status == domain.UserStatusSuspended {
		return nil, apperror.Forbidden("Account has been suspended")
	}

	if u.guard != nil {
		if err := u.guard.ClearAttempts(ctx, email, in.ClientIP); err != nil {
			logger.Log.Warn("Failed to clear login attempts", "error", err)
		}
	}
	u.secLog.LogLoginSuccess(ctx, user.ID, in.ClientIP, in.UserAgent, in.RequestID)
	return u.issuePair(user.ID)
}

// loginFailed records the attempt and returns the single message used for
// unknown emails and wrong passwords alike.
func (u *authUsecase) loginFailed(ctx context.Context, email string, in domain.LoginInput) error {
	if u.guard == nil {
		u.secLog.LogLoginFailed(ctx, email, in.ClientIP, in.UserAgent, in.RequestID, "invalid_credentials")
		return apperror.Unauthorized(invalidCredentials)
	}
	blocked, _, err := u.guard.RecordFailedAttempt(ctx, email, in.ClientIP, in.UserAgent, in.RequestID)
	if err != nil {
		logger.Log.Warn("Failed to record login attempt", "error", err)
	}
	if blocked {
		return apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	}
	return apperror.Unauthorized(invalidCredentials)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, ok := u.tokens.Verify(refreshToken)
	if !ok || !claims.IsRefresh() {
		return nil, apperror.Unauthorized("Invalid or expired refresh token")
	}
	userID, ok := auth.SubjectOf(claims)
	if !ok {
		return nil, apperror.Unauthorized("Invalid token payload")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			u.secLog.LogTokenRefreshDenied(ctx, userID, "user_not_found")
		}
		return nil, err
	}
	if user.Status == domain.UserStatusSuspended {
		u.secLog.LogTokenRefreshDenied(ctx, userID, "suspended")
		return nil, apperror.Forbidden("Account has been suspended")
	}

	access, err := u.tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(u.tokens.AccessTTL().Seconds()),
	}, nil
}

func (u *authUsecase) VerifyToken(ctx context.Context, token string) (*domain.TokenInfo, error) {
	claims, ok := u.tokens.Verify(token)
	if !ok {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	userID, ok := auth.SubjectOf(claims)
	if !ok {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return &domain.TokenInfo{
		Valid:     true,
		UserID:    userID,
		ExpiresAt: auth.ExpiresAt(claims),
	}, nil
}

// ResolvePrincipal turns an Authorization header into the current user
// record. Every call re-verifies the token and re-reads the user.
func (u *authUsecase) ResolvePrincipal(ctx context.Context, authHeader string) (*domain.User, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}

	claims, ok := u.tokens.Verify(token)
	if !ok || claims.IsRefresh() {
		return nil, apperror.Unauthorized("Could not validate credentials")
	}
	userID, ok := auth.SubjectOf(claims)
	if !ok {
		return nil, apperror.Unauthorized("Could not validate credentials")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates an active admin account when none exists for email.
func (u *authUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			logger.Log.Warn("Admin seed email belongs to a non-admin account", "user_id", existing.ID)
		}
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         domain.RoleAdmin,
		Status:       domain.UserStatusActive,
		Skills:       []string{},
	}
	if err := u.userRepo.Create(ctx, admin); err != nil {
		// Lost a race with another instance seeding the same admin
		if apperror.Is(err, http.StatusConflict) {
			return nil
		}
		return err
	}
	logger.Log.Info("Admin account created", "user_id", admin.ID)
	u.secLog.LogAdminAction(ctx, security.EventAdminSeeded, "system", admin.ID, nil)
	return nil
}

func (u *authUsecase) issuePair(userID string) (*domain.TokenPair, error) {
	access, err := u.tokens.IssueAccess(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refresh, err := u.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(u.tokens.AccessTTL().Seconds()),
	}, nil
}
