package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"careerai-backend/internal/domain"
	"careerai-backend/internal/repository/memory"
	"careerai-backend/internal/usecase"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/auth"
	"careerai-backend/pkg/storage"
	"careerai-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "correct-horse-battery"

// MockLoginGuard stands in for the Redis-backed login tracker.
type MockLoginGuard struct {
	mock.Mock
}

func (m *MockLoginGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	args := m.Called(ctx, email, ip, userAgent, requestID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockLoginGuard) ClearAttempts(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type fixture struct {
	store  *memory.Store
	tokens *auth.TokenService

	users      domain.UserRepository
	jobs       domain.JobRepository
	apps       domain.ApplicationRepository
	resumes    domain.ResumeRepository
	interviews domain.InterviewRepository
	files      domain.FileStorage

	auth        domain.AuthUsecase
	userUC      domain.UserUsecase
	jobUC       domain.JobUsecase
	appUC       domain.ApplicationUsecase
	resumeUC    domain.ResumeUsecase
	interviewUC domain.InterviewUsecase
	analysisUC  domain.AnalysisUsecase
	adminUC     domain.AdminUsecase
}

func newFixture(t *testing.T, guard usecase.LoginGuard) *fixture {
	t.Helper()

	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	v := validation.New()
	s := memory.NewStore()
	f := &fixture{
		store:      s,
		tokens:     tokens,
		users:      memory.NewUserRepository(s),
		jobs:       memory.NewJobRepository(s),
		apps:       memory.NewApplicationRepository(s),
		resumes:    memory.NewResumeRepository(s),
		interviews: memory.NewInterviewRepository(s),
		files:      files,
	}
	f.auth = usecase.NewAuthUsecase(f.users, hasher, tokens, guard, nil, v)
	f.userUC = usecase.NewUserUsecase(f.users, f.resumes, files, v, nil)
	f.jobUC = usecase.NewJobUsecase(f.jobs, v)
	f.appUC = usecase.NewApplicationUsecase(f.apps, f.jobs, f.resumes, usecase.NewSkillScorer(), v)
	f.resumeUC = usecase.NewResumeUsecase(f.resumes, files, 1<<20)
	f.interviewUC = usecase.NewInterviewUsecase(f.interviews, f.apps, f.jobs, v)
	f.analysisUC = usecase.NewAnalysisUsecase(memory.NewResumeAnalysisRepository(s), f.resumes, f.jobs, nil)
	f.adminUC = usecase.NewAdminUsecase(memory.NewAdminRepository(s), f.users, f.jobs, f.apps, f.resumes, files, nil)
	return f
}

// signup registers an account and resolves it the way the middleware does.
func (f *fixture) signup(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	ctx := context.Background()
	pair, err := f.auth.Signup(ctx, domain.SignupInput{
		Email:     email,
		Password:  testPassword,
		FirstName: "Test",
		LastName:  "User",
		Role:      string(role),
	})
	require.NoError(t, err)
	user, err := f.auth.ResolvePrincipal(ctx, "Bearer "+pair.AccessToken)
	require.NoError(t, err)
	return user
}

func (f *fixture) admin(t *testing.T, email string) *domain.User {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.EnsureAdmin(ctx, email, testPassword))
	user, err := f.users.GetByEmail(ctx, email)
	require.NoError(t, err)
	return user
}

func (f *fixture) postJob(t *testing.T, employer *domain.User) *domain.Job {
	t.Helper()
	job, err := f.jobUC.CreateJob(context.Background(), employer, domain.JobInput{
		Title:        "Backend Engineer",
		CompanyName:  "Acme",
		Description:  "Build and operate Go services.",
		Location:     "Remote, EU",
		JobType:      "full-time",
		Requirements: []string{"Go", "PostgreSQL"},
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) applicantCount(t *testing.T, jobID string) int {
	t.Helper()
	job, err := f.jobs.GetByID(context.Background(), jobID)
	require.NoError(t, err)
	return job.ApplicantCount
}

func assertCode(t *testing.T, code int, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperror.CodeOf(err), err.Error())
}

func TestJobListingDegradesWhenStorageUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
	f.postJob(t, employer)

	page, err := f.jobUC.ListJobs(context.Background(), domain.JobFilter{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 100, page.Limit)

	f.store.Unavailable = assert.AnError
	page, err = f.jobUC.ListJobs(context.Background(), domain.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.EqualValues(t, 0, page.Total)

	_, err = f.jobUC.CreateJob(context.Background(), employer, domain.JobInput{
		Title: "Another", CompanyName: "Acme", Description: "Long enough description.",
		Location: "Berlin", JobType: "Contract",
	})
	assertCode(t, http.StatusServiceUnavailable, err)
}

func TestJobOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	owner := f.signup(t, "owner@acme.test", domain.RoleEmployer)
	other := f.signup(t, "other@globex.test", domain.RoleEmployer)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)
	admin := f.admin(t, "root@portal.test")
	job := f.postJob(t, owner)

	_, err := f.jobUC.CreateJob(ctx, student, domain.JobInput{})
	assertCode(t, http.StatusForbidden, err)

	title := "Senior Backend Engineer"
	_, err = f.jobUC.UpdateJob(ctx, other, job.ID, domain.JobPatch{Title: &title})
	assertCode(t, http.StatusForbidden, err)

	_, err = f.jobUC.UpdateJob(ctx, other, "missing", domain.JobPatch{Title: &title})
	assertCode(t, http.StatusNotFound, err)

	updated, err := f.jobUC.UpdateJob(ctx, owner, job.ID, domain.JobPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	closed, err := f.jobUC.CloseJob(ctx, admin, job.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	mine, err := f.jobUC.ListMyJobs(ctx, owner, 0, 0)
	require.NoError(t, err)
	require.Len(t, mine.Data, 1)
	assert.False(t, mine.Data[0].IsActive)

	public, err := f.jobUC.ListJobs(ctx, domain.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, public.Data, "closed jobs are hidden from the board")

	assertCode(t, http.StatusForbidden, f.jobUC.DeleteJob(ctx, other, job.ID))
	require.NoError(t, f.jobUC.DeleteJob(ctx, owner, job.ID))
	_, err = f.jobUC.GetJob(ctx, job.ID)
	assertCode(t, http.StatusNotFound, err)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)

	phone := "+1 201-555-0123"
	bio := "Go enthusiast"
	skills := []string{"Go", "SQL"}
	user, err := f.userUC.UpdateProfile(ctx, student, domain.UserPatch{Phone: &phone, Bio: &bio, Skills: &skills})
	require.NoError(t, err)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+12015550123", *user.Phone)
	assert.Equal(t, skills, user.Skills)
	assert.Equal(t, domain.RoleStudent, user.Role)

	bad := "not a phone"
	_, err = f.userUC.UpdateProfile(ctx, student, domain.UserPatch{Phone: &bad})
	assertCode(t, http.StatusBadRequest, err)

	empty := ""
	user, err = f.userUC.UpdateProfile(ctx, student, domain.UserPatch{Bio: &empty})
	require.NoError(t, err)
	assert.Nil(t, user.Bio)

	got, err := f.userUC.GetProfile(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, "student@uni.test", got.Email)
}

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return assert.AnError }

	status := usecase.NewHealthUsecase(
		usecase.HealthProbe{Name: "database", Critical: true, Ping: ok},
		usecase.HealthProbe{Name: "redis", Ping: down},
	).Check(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unavailable", status.Checks["redis"])

	status = usecase.NewHealthUsecase(
		usecase.HealthProbe{Name: "database", Critical: true, Ping: down},
	).Check(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "unavailable", status.Status)
}
