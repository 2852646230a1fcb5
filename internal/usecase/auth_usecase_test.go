package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"careerai-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	t.Run("students start active, employers pending", func(t *testing.T) {
		student := f.signup(t, "Student@Uni.test", domain.RoleStudent)
		assert.Equal(t, "student@uni.test", student.Email)
		assert.Equal(t, domain.UserStatusActive, student.Status)
		assert.NotEqual(t, testPassword, student.PasswordHash)

		employer := f.signup(t, "hr@acme.test", domain.RoleEmployer)
		assert.Equal(t, domain.UserStatusPending, employer.Status)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, domain.SignupInput{
			Email: "STUDENT@uni.test", Password: testPassword,
			FirstName: "Dup", LastName: "User", Role: "student",
		})
		assertCode(t, http.StatusConflict, err)
	})

	t.Run("admin cannot self-register", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, domain.SignupInput{
			Email: "boss@portal.test", Password: testPassword,
			FirstName: "Boss", LastName: "User", Role: "ADMIN",
		})
		assertCode(t, http.StatusBadRequest, err)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := f.auth.Signup(ctx, domain.SignupInput{
			Email: "short@uni.test", Password: "short",
			FirstName: "Short", LastName: "Pass", Role: "STUDENT",
		})
		assertCode(t, http.StatusBadRequest, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	guard := new(MockLoginGuard)
	f := newFixture(t, guard)

	guard.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	guard.On("ClearAttempts", mock.Anything, "student@uni.test", "10.0.0.1").Return(nil).Maybe()
	f.signup(t, "student@uni.test", domain.RoleStudent)

	t.Run("success issues usable tokens", func(t *testing.T) {
		pair, err := f.auth.Login(ctx, domain.LoginInput{Email: " Student@uni.test ", Password: testPassword, ClientIP: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", pair.TokenType)
		assert.EqualValues(t, 3600, pair.ExpiresIn)

		user, err := f.auth.ResolvePrincipal(ctx, "bearer "+pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "student@uni.test", user.Email)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		guard.On("RecordFailedAttempt", mock.Anything, mock.Anything, "10.0.0.2", mock.Anything, mock.Anything).
			Return(false, 1, nil).Twice()

		_, errUnknown := f.auth.Login(ctx, domain.LoginInput{Email: "ghost@uni.test", Password: testPassword, ClientIP: "10.0.0.2"})
		_, errWrong := f.auth.Login(ctx, domain.LoginInput{Email: "student@uni.test", Password: "wrong-password", ClientIP: "10.0.0.2"})
		assertCode(t, http.StatusUnauthorized, errUnknown)
		assertCode(t, http.StatusUnauthorized, errWrong)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("attempt that creates a block is rejected with 429", func(t *testing.T) {
		guard.On("RecordFailedAttempt", mock.Anything, mock.Anything, "10.0.0.3", mock.Anything, mock.Anything).
			Return(true, 5, nil).Once()
		_, err := f.auth.Login(ctx, domain.LoginInput{Email: "student@uni.test", Password: "nope-nope", ClientIP: "10.0.0.3"})
		assertCode(t, http.StatusTooManyRequests, err)
	})

	guard.AssertExpectations(t)
}

func TestLoginBlocked(t *testing.T) {
	guard := new(MockLoginGuard)
	f := newFixture(t, guard)
	guard.On("IsBlocked", mock.Anything, "student@uni.test", "10.0.0.9").Return(true, nil).Once()

	_, err := f.auth.Login(context.Background(), domain.LoginInput{Email: "student@uni.test", Password: testPassword, ClientIP: "10.0.0.9"})
	assertCode(t, http.StatusTooManyRequests, err)
	guard.AssertNotCalled(t, "RecordFailedAttempt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuspendedAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)

	pair, err := f.auth.Login(ctx, domain.LoginInput{Email: "student@uni.test", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, f.users.UpdateStatus(ctx, student.ID, domain.UserStatusSuspended))

	_, err = f.auth.Login(ctx, domain.LoginInput{Email: "student@uni.test", Password: testPassword})
	assertCode(t, http.StatusForbidden, err)

	_, err = f.auth.Refresh(ctx, pair.RefreshToken)
	assertCode(t, http.StatusForbidden, err)

	// Access tokens issued before suspension stay valid until they expire.
	principal, err := f.auth.ResolvePrincipal(ctx, "Bearer "+pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusSuspended, principal.Status)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.signup(t, "student@uni.test", domain.RoleStudent)
	pair, err := f.auth.Login(ctx, domain.LoginInput{Email: "student@uni.test", Password: testPassword})
	require.NoError(t, err)

	refreshed, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.auth.Refresh(ctx, pair.AccessToken)
	assertCode(t, http.StatusUnauthorized, err)

	orphan, err := f.tokens.IssueRefresh("no-such-user")
	require.NoError(t, err)
	_, err = f.auth.Refresh(ctx, orphan)
	assertCode(t, http.StatusNotFound, err)
}

func TestResolvePrincipal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	student := f.signup(t, "student@uni.test", domain.RoleStudent)
	access, err := f.tokens.IssueAccess(student.ID)
	require.NoError(t, err)
	refresh, err := f.tokens.IssueRefresh(student.ID)
	require.NoError(t, err)
	ghost, err := f.tokens.IssueAccess("deleted-user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"empty header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + access, http.StatusUnauthorized},
		{"scheme only", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"deleted identity", "Bearer " + ghost, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.ResolvePrincipal(ctx, tt.header)
			assertCode(t, tt.code, err)
		})
	}

	t.Run("reflects the current record", func(t *testing.T) {
		require.NoError(t, f.users.UpdateStatus(ctx, student.ID, domain.UserStatusInactive))
		user, err := f.auth.ResolvePrincipal(ctx, "BEARER "+access)
		require.NoError(t, err)
		assert.Equal(t, domain.UserStatusInactive, user.Status)
	})
}

func TestVerifyToken(t *testing.T) {
	f := newFixture(t, nil)
	access, err := f.tokens.IssueAccess("user-1")
	require.NoError(t, err)

	info, err := f.auth.VerifyToken(context.Background(), access)
	require.NoError(t, err)
	assert.True(t, info.Valid)
	assert.Equal(t, "user-1", info.UserID)
	assert.False(t, info.ExpiresAt.IsZero())

	_, err = f.auth.VerifyToken(context.Background(), access+"x")
	assertCode(t, http.StatusUnauthorized, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	first := f.admin(t, "root@portal.test")
	second := f.admin(t, "ROOT@portal.test")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.RoleAdmin, first.Role)

	admins, total, err := f.users.List(ctx, domain.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, admins, 1)

	require.NoError(t, f.auth.EnsureAdmin(ctx, "", ""), "unset seed is a no-op")
}
