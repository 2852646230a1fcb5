package authz_test

import (
	"net/http"
	"testing"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

var (
	student  = &domain.User{ID: "student-1", Role: domain.RoleStudent}
	student2 = &domain.User{ID: "student-2", Role: domain.RoleStudent}
	employer = &domain.User{ID: "employer-1", Role: domain.RoleEmployer}
	rival    = &domain.User{ID: "employer-2", Role: domain.RoleEmployer}
	admin    = &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	admin2   = &domain.User{ID: "admin-2", Role: domain.RoleAdmin}

	job = &domain.Job{ID: "job-1", PostedBy: employer.ID}
	app = &domain.Application{ID: "app-1", JobID: job.ID, UserID: student.ID}
)

func assertCode(t *testing.T, want int, err error) {
	t.Helper()
	if want == 0 {
		assert.NoError(t, err)
		return
	}
	assert.Equal(t, want, apperror.CodeOf(err), "error: %v", err)
}

func TestRequireRole(t *testing.T) {
	assertCode(t, 0, authz.RequireRole(student, "students only", domain.RoleStudent))
	assertCode(t, http.StatusForbidden, authz.RequireRole(employer, "students only", domain.RoleStudent))
	assertCode(t, 0, authz.RequireRole(admin, "staff", domain.RoleEmployer, domain.RoleAdmin))
	assertCode(t, http.StatusUnauthorized, authz.RequireRole(nil, "students only", domain.RoleStudent))

	err := authz.RequireRole(employer, "Only students can apply for jobs", domain.RoleStudent)
	assert.EqualError(t, err, "Only students can apply for jobs")

	assertCode(t, 0, authz.RequireAdmin(admin))
	assertCode(t, http.StatusForbidden, authz.RequireAdmin(employer))
}

func TestCanManageJob(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		job  *domain.Job
		want int
	}{
		{"owner", employer, job, 0},
		{"admin bypasses ownership", admin, job, 0},
		{"other employer", rival, job, http.StatusForbidden},
		{"student", student, job, http.StatusForbidden},
		{"missing job wins over permission", rival, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.want, authz.CanManageJob(tt.user, tt.job))
		})
	}
}

func TestCanUpdateApplicationStatus(t *testing.T) {
	assertCode(t, 0, authz.CanUpdateApplicationStatus(employer, app, job))
	assertCode(t, 0, authz.CanUpdateApplicationStatus(admin, app, job))
	assertCode(t, http.StatusForbidden, authz.CanUpdateApplicationStatus(rival, app, job))
	assertCode(t, http.StatusNotFound, authz.CanUpdateApplicationStatus(rival, nil, job))
	assertCode(t, http.StatusNotFound, authz.CanUpdateApplicationStatus(employer, app, nil))
}

func TestCanWithdraw(t *testing.T) {
	assertCode(t, 0, authz.CanWithdraw(student, app))
	assertCode(t, http.StatusForbidden, authz.CanWithdraw(student2, app))
	assertCode(t, http.StatusForbidden, authz.CanWithdraw(employer, app))
	assertCode(t, http.StatusForbidden, authz.CanWithdraw(admin, app))
	assertCode(t, http.StatusNotFound, authz.CanWithdraw(student2, nil))
}

func TestCanViewApplication(t *testing.T) {
	assertCode(t, 0, authz.CanViewApplication(student, app, job))
	assertCode(t, 0, authz.CanViewApplication(employer, app, job))
	assertCode(t, 0, authz.CanViewApplication(admin, app, nil))
	assertCode(t, http.StatusForbidden, authz.CanViewApplication(student2, app, job))
	assertCode(t, http.StatusForbidden, authz.CanViewApplication(rival, app, job))
	assertCode(t, http.StatusForbidden, authz.CanViewApplication(employer, app, nil))
	assertCode(t, http.StatusNotFound, authz.CanViewApplication(rival, nil, job))
}

func TestCanDeleteInterview(t *testing.T) {
	result := &domain.InterviewResult{ID: "ir-1", ApplicationID: app.ID}

	assertCode(t, 0, authz.CanDeleteInterview(student, result, app))
	assertCode(t, 0, authz.CanDeleteInterview(admin, result, nil))
	assertCode(t, http.StatusForbidden, authz.CanDeleteInterview(employer, result, app))
	assertCode(t, http.StatusForbidden, authz.CanDeleteInterview(student2, result, app))
	assertCode(t, http.StatusNotFound, authz.CanDeleteInterview(student2, nil, app))
}

func TestCanViewStudentHistory(t *testing.T) {
	assertCode(t, 0, authz.CanViewStudentHistory(student, student.ID))
	assertCode(t, 0, authz.CanViewStudentHistory(admin, student.ID))
	assertCode(t, http.StatusForbidden, authz.CanViewStudentHistory(student2, student.ID))
	assertCode(t, http.StatusForbidden, authz.CanViewStudentHistory(employer, student.ID))
}

func TestCanDeleteUser(t *testing.T) {
	tests := []struct {
		name   string
		actor  *domain.User
		target *domain.User
		want   int
	}{
		{"admin deletes student", admin, student, 0},
		{"admin deletes employer", admin, employer, 0},
		{"admin deletes self", admin, admin, 0},
		{"admin cannot delete peer admin", admin, admin2, http.StatusForbidden},
		{"missing target", admin, nil, http.StatusNotFound},
		{"non-admin actor", employer, student, http.StatusForbidden},
		{"non-admin gets no existence hint", employer, nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.want, authz.CanDeleteUser(tt.actor, tt.target))
		})
	}
}

func TestCanDeleteAccount(t *testing.T) {
	tests := []struct {
		name   string
		actor  *domain.User
		target *domain.User
		want   int
	}{
		{"student closes own account", student, student, 0},
		{"employer closes own account", employer, employer, 0},
		{"student cannot delete another student", student, student2, http.StatusForbidden},
		{"employer cannot delete student", employer, student, http.StatusForbidden},
		{"admin deletes student", admin, student, 0},
		{"admin closes own account", admin, admin, 0},
		{"admin cannot delete peer admin", admin, admin2, http.StatusForbidden},
		{"missing target", student, nil, http.StatusNotFound},
		{"anonymous", nil, student, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.want, authz.CanDeleteAccount(tt.actor, tt.target))
		})
	}
}

func TestCanManageResume(t *testing.T) {
	resume := &domain.Resume{ID: "r-1", UserID: student.ID}

	assertCode(t, 0, authz.CanManageResume(student, resume))
	assertCode(t, http.StatusForbidden, authz.CanManageResume(student2, resume))
	assertCode(t, http.StatusForbidden, authz.CanManageResume(admin, resume))
	assertCode(t, http.StatusNotFound, authz.CanManageResume(student, nil))
}
