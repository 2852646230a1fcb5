package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEmployer Role = "EMPLOYER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts any casing and returns the canonical role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleEmployer:
		return RoleEmployer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// UserStatus is the closed set of account states.
type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusInactive  UserStatus = "Inactive"
	UserStatusPending   UserStatus = "Pending"
	UserStatusSuspended UserStatus = "Suspended"
)

var userStatuses = []UserStatus{UserStatusActive, UserStatusInactive, UserStatusPending, UserStatusSuspended}

// ParseUserStatus accepts any casing and returns the canonical status.
func ParseUserStatus(s string) (UserStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range userStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown user status %q", s)
}

// User is an account identity. IDs are UUIDs and never reused.
type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          *string    `json:"phone,omitempty"`
	Location       *string    `json:"location,omitempty"`
	AvatarURL      *string    `json:"avatar_url,omitempty"`
	Bio            *string    `json:"bio,omitempty"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	University     *string    `json:"university,omitempty"`
	Major          *string    `json:"major,omitempty"`
	GraduationYear *string    `json:"graduation_year,omitempty"`
	GPA            *string    `json:"gpa,omitempty"`
	Skills         []string   `json:"skills"`
	LinkedinURL    *string    `json:"linkedin_url,omitempty"`
	GithubURL      *string    `json:"github_url,omitempty"`
	PortfolioURL   *string    `json:"portfolio_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicProfile is the part of an account anyone may look up. Contact
// details, status and grades are left out.
type PublicProfile struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	Location     *string   `json:"location,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	University   *string   `json:"university,omitempty"`
	Major        *string   `json:"major,omitempty"`
	Skills       []string  `json:"skills"`
	LinkedinURL  *string   `json:"linkedin_url,omitempty"`
	GithubURL    *string   `json:"github_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Public() *PublicProfile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return &PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Location:     u.Location,
		AvatarURL:    u.AvatarURL,
		Bio:          u.Bio,
		University:   u.University,
		Major:        u.Major,
		Skills:       skills,
		LinkedinURL:  u.LinkedinURL,
		GithubURL:    u.GithubURL,
		PortfolioURL: u.PortfolioURL,
		CreatedAt:    u.CreatedAt,
	}
}

// UserPatch lists the profile fields a user may change. Nil fields are left untouched.
type UserPatch struct {
	FirstName      *string   `json:"first_name" binding:"omitempty,min=1,max=100,valid_name"`
	LastName       *string   `json:"last_name" binding:"omitempty,min=1,max=100,valid_name"`
	Phone          *string   `json:"phone" binding:"omitempty,valid_phone"`
	Location       *string   `json:"location" binding:"omitempty,max=200"`
	AvatarURL      *string   `json:"avatar_url" binding:"omitempty,url"`
	Bio            *string   `json:"bio" binding:"omitempty,max=2000"`
	University     *string   `json:"university" binding:"omitempty,max=200"`
	Major          *string   `json:"major" binding:"omitempty,max=200"`
	GraduationYear *string   `json:"graduation_year" binding:"omitempty,max=10"`
	GPA            *string   `json:"gpa" binding:"omitempty,max=10"`
	Skills         *[]string `json:"skills" binding:"omitempty,max=100,dive,min=1,max=100"`
	LinkedinURL    *string   `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL      *string   `json:"github_url" binding:"omitempty,url"`
	PortfolioURL   *string   `json:"portfolio_url" binding:"omitempty,url"`
}

// Apply copies the set fields of the patch onto u.
func (p UserPatch) Apply(u *User) {
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setOptional(&u.Phone, p.Phone)
	setOptional(&u.Location, p.Location)
	setOptional(&u.AvatarURL, p.AvatarURL)
	setOptional(&u.Bio, p.Bio)
	setOptional(&u.University, p.University)
	setOptional(&u.Major, p.Major)
	setOptional(&u.GraduationYear, p.GraduationYear)
	setOptional(&u.GPA, p.GPA)
	if p.Skills != nil {
		u.Skills = append([]string(nil), (*p.Skills)...)
	}
	setOptional(&u.LinkedinURL, p.LinkedinURL)
	setOptional(&u.GithubURL, p.GithubURL)
	setOptional(&u.PortfolioURL, p.PortfolioURL)
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role   *Role
	Status *UserStatus
	Offset int
	Limit  int
}

// SignupInput is the self-registration payload.
type SignupInput struct {
	Email     string  `json:"email" binding:"required,email,max=254"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"required,min=1,max=100,valid_name"`
	LastName  string  `json:"last_name" binding:"required,min=1,max=100,valid_name"`
	Role      string  `json:"role" binding:"required,user_role"`
	Phone     *string `json:"phone" binding:"omitempty,valid_phone"`
	Location  *string `json:"location" binding:"omitempty,max=200"`
}

// LoginInput carries credentials plus request metadata for attempt tracking.
type LoginInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
	RequestID string `json:"-"`
}

// TokenPair is returned by signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenInfo describes a verified token.
type TokenInfo struct {
	Valid     bool      `json:"valid"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateStatus(ctx context.Context, id string, status UserStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
}

type AuthUsecase interface {
	Signup(ctx context.Context, in SignupInput) (*TokenPair, error)
	Login(ctx context.Context, in LoginInput) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	VerifyToken(ctx context.Context, token string) (*TokenInfo, error)
	ResolvePrincipal(ctx context.Context, authHeader string) (*User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, principal *User) (*User, error)
	UpdateProfile(ctx context.Context, principal *User, patch UserPatch) (*User, error)
	GetPublicProfile(ctx context.Context, id string) (*PublicProfile, error)
	// DeleteAccount removes id on behalf of the account itself or an admin.
	DeleteAccount(ctx context.Context, principal *User, id string) error
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// setOptional stores v, clearing the field when v points to an empty string.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}
