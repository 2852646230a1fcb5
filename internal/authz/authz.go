// Package authz holds the authorization predicates composed at each call
// site. Every predicate is pure: it only inspects the principal and the
// already-loaded target. A nil target means the target does not exist and
// yields NotFound before any permission check runs.
package authz

import (
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
)

// IsAdmin reports whether the principal has the admin role.
func IsAdmin(u *domain.User) bool {
	return u != nil && u.Role == domain.RoleAdmin
}

// HasRole reports whether the principal holds one of roles.
func HasRole(u *domain.User, roles ...domain.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// RequireRole returns Forbidden with msg unless the principal holds one of roles.
func RequireRole(u *domain.User, msg string, roles ...domain.Role) error {
	if u == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if !HasRole(u, roles...) {
		return apperror.Forbidden(msg)
	}
	return nil
}

// RequireAdmin is RequireRole for the admin-only surface.
func RequireAdmin(u *domain.User) error {
	return RequireRole(u, "Admin access required", domain.RoleAdmin)
}

// OwnsJob reports whether the principal posted the job.
func OwnsJob(u *domain.User, job *domain.Job) bool {
	return u != nil && job != nil && job.PostedBy == u.ID
}

// CanManageJob permits the owning employer and admins.
func CanManageJob(u *domain.User, job *domain.Job) error {
	if job == nil {
		return apperror.NotFound("Job not found")
	}
	if IsAdmin(u) || OwnsJob(u, job) {
		return nil
	}
	return apperror.Forbidden("You don't have permission to manage this job")
}

// CanUpdateApplicationStatus permits the employer owning the application's
// job and admins.
func CanUpdateApplicationStatus(u *domain.User, app *domain.Application, job *domain.Job) error {
	if app == nil {
		return apperror.NotFound("Application not found")
	}
	if job == nil {
		return apperror.NotFound("Job not found")
	}
	if IsAdmin(u) || OwnsJob(u, job) {
		return nil
	}
	return apperror.Forbidden("You don't have permission to update this application")
}

// CanWithdraw permits only the applicant. Admins do not withdraw on behalf
// of students.
func CanWithdraw(u *domain.User, app *domain.Application) error {
	if app == nil {
		return apperror.NotFound("Application not found")
	}
	if u != nil && app.UserID == u.ID {
		return nil
	}
	return apperror.Forbidden("You can only withdraw your own applications")
}

// CanViewApplication permits the applicant, the owning employer and admins.
// job may be nil when the job row is gone; only the applicant and admins
// are then allowed.
func CanViewApplication(u *domain.User, app *domain.Application, job *domain.Job) error {
	if app == nil {
		return apperror.NotFound("Application not found")
	}
	if u == nil {
		return apperror.Forbidden("Access denied")
	}
	if IsAdmin(u) || app.UserID == u.ID || OwnsJob(u, job) {
		return nil
	}
	return apperror.Forbidden("Access denied")
}

// CanDeleteInterview permits the applicant of the owning application and admins.
func CanDeleteInterview(u *domain.User, result *domain.InterviewResult, app *domain.Application) error {
	if result == nil {
		return apperror.NotFound("Interview result not found")
	}
	if IsAdmin(u) {
		return nil
	}
	if app != nil && u != nil && app.UserID == u.ID {
		return nil
	}
	return apperror.Forbidden("Access denied")
}

// CanViewStudentHistory permits the student themself and admins.
func CanViewStudentHistory(u *domain.User, studentID string) error {
	if u == nil {
		return apperror.Forbidden("Access denied")
	}
	if IsAdmin(u) || u.ID == studentID {
		return nil
	}
	return apperror.Forbidden("Access denied")
}

// CanDeleteUser permits admins to delete any non-admin account and
// themselves. Peer admins are never deletable, admin or not.
func CanDeleteUser(actor, target *domain.User) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if target == nil {
		return apperror.NotFound("User not found")
	}
	if target.Role == domain.RoleAdmin && target.ID != actor.ID {
		return apperror.Forbidden("Cannot delete another admin account")
	}
	return nil
}

// CanDeleteAccount permits closing one's own account, or an admin deleting
// an account under CanDeleteUser.
func CanDeleteAccount(actor, target *domain.User) error {
	if actor == nil {
		return apperror.Unauthorized("Not authenticated")
	}
	if target == nil {
		return apperror.NotFound("User not found")
	}
	if actor.ID == target.ID {
		return nil
	}
	if !IsAdmin(actor) {
		return apperror.Forbidden("Cannot delete other users")
	}
	return CanDeleteUser(actor, target)
}

// CanManageResume permits only the resume's owner.
func CanManageResume(u *domain.User, resume *domain.Resume) error {
	if resume == nil {
		return apperror.NotFound("Resume not found")
	}
	if u != nil && resume.UserID == u.ID {
		return nil
	}
	return apperror.Forbidden("Access denied")
}
