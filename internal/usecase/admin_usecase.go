package usecase

import (
	"bytes"
	"context"
	"fmt"

	"careerai-backend/internal/authz"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/security"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Applications"

type adminUsecase struct {
	adminRepo       domain.AdminRepository
	userRepo        domain.UserRepository
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	resumeRepo      domain.ResumeRepository
	files           domain.FileStorage
	secLog          *security.SecurityLogger
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	userRepo domain.UserRepository,
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	resumeRepo domain.ResumeRepository,
	files domain.FileStorage,
	secLog *security.SecurityLogger,
) domain.AdminUsecase {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &adminUsecase{
		adminRepo:       adminRepo,
		userRepo:        userRepo,
		jobRepo:         jobRepo,
		applicationRepo: appRepo,
		resumeRepo:      resumeRepo,
		files:           files,
		secLog:          secLog,
	}
}

// GetStats returns dashboard statistics
func (u *adminUsecase) GetStats(ctx context.Context, principal *domain.User) (*domain.AdminStats, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return u.adminRepo.GetStats(ctx)
}

// ListUsers returns paginated users
func (u *adminUsecase) ListUsers(ctx context.Context, principal *domain.User, filter domain.UserFilter) (*domain.PaginatedResult[domain.User], error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	filter.Offset, filter.Limit = normalizePage(filter.Offset, filter.Limit)

	users, total, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(users, total, filter.Offset, filter.Limit), nil
}

func (u *adminUsecase) UpdateUserStatus(ctx context.Context, principal *domain.User, userID string, status domain.UserStatus) (*domain.User, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	status, err := domain.ParseUserStatus(string(status))
	if err != nil {
		return nil, apperror.BadRequest("Invalid user status")
	}
	if err := u.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	logger.Log.Info("User status updated", "user_id", userID, "status", status, "by", principal.ID)
	u.secLog.LogAdminAction(ctx, security.EventUserStatusChanged, principal.ID, userID,
		map[string]interface{}{"status": string(status)})
	return u.userRepo.GetByID(ctx, userID)
}

// DeleteUser removes the account with everything it owns. Stored resume
// files are removed after the rows are gone.
func (u *adminUsecase) DeleteUser(ctx context.Context, principal *domain.User, userID string) error {
	if err := authz.RequireAdmin(principal); err != nil {
		return err
	}
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil && !isNotFound(err) {
		return err
	}
	if err := authz.CanDeleteUser(principal, target); err != nil {
		return err
	}

	if err := removeAccount(ctx, u.userRepo, u.resumeRepo, u.files, target.ID); err != nil {
		return err
	}

	logger.Log.Info("User deleted", "user_id", target.ID, "by", principal.ID)
	u.secLog.LogAdminAction(ctx, security.EventUserDeleted, principal.ID, target.ID,
		map[string]interface{}{"role": string(target.Role)})
	return nil
}

// PendingApprovals lists employers waiting for activation.
func (u *adminUsecase) PendingApprovals(ctx context.Context, principal *domain.User) ([]domain.User, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	role, status := domain.RoleEmployer, domain.UserStatusPending
	users, _, err := u.userRepo.List(ctx, domain.UserFilter{Role: &role, Status: &status})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (u *adminUsecase) ApproveEmployer(ctx context.Context, principal *domain.User, userID string) (*domain.User, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleEmployer {
		return nil, apperror.BadRequest("User is not an employer")
	}
	return u.UpdateUserStatus(ctx, principal, target.ID, domain.UserStatusActive)
}

func (u *adminUsecase) DeleteJob(ctx context.Context, principal *domain.User, jobID string) error {
	if err := authz.RequireAdmin(principal); err != nil {
		return err
	}
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, job.ID); err != nil {
		return err
	}
	logger.Log.Info("Job deleted by admin", "job_id", job.ID, "by", principal.ID)
	u.secLog.LogAdminAction(ctx, security.EventJobRemoved, principal.ID, job.PostedBy,
		map[string]interface{}{"job_id": job.ID})
	return nil
}

func (u *adminUsecase) ListApplications(ctx context.Context, principal *domain.User, filter domain.ApplicationFilter) (*domain.PaginatedResult[domain.Application], error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	filter.Offset, filter.Limit = normalizePage(filter.Offset, filter.Limit)

	apps, total, err := u.applicationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(apps, total, filter.Offset, filter.Limit), nil
}

// ExportApplications renders every application, optionally filtered by
// status, as an xlsx workbook.
func (u *adminUsecase) ExportApplications(ctx context.Context, principal *domain.User, status *domain.ApplicationStatus) ([]byte, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	apps, _, err := u.applicationRepo.List(ctx, domain.ApplicationFilter{Status: status})
	if err != nil {
		return nil, err
	}

	emails := make(map[string]string)
	for _, a := range apps {
		if _, seen := emails[a.UserID]; seen {
			continue
		}
		emails[a.UserID] = ""
		if user, err := u.userRepo.GetByID(ctx, a.UserID); err == nil {
			emails[a.UserID] = user.Email
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, apperror.Internal(err)
	}

	columns := []string{"Application ID", "Job Title", "Company", "Applicant Email", "Status", "Match Score", "Applied Date"}
	for i, name := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, name)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	f.SetCellStyle(exportSheet, "A1", endCell, headerStyle)

	for rowIdx, a := range apps {
		values := []interface{}{
			a.ID,
			deref(a.JobTitle),
			deref(a.CompanyName),
			emails[a.UserID],
			string(a.Status),
			"",
			a.AppliedDate.Format("2006-01-02 15:04"),
		}
		if a.MatchScore != nil {
			values[5] = *a.MatchScore
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}
	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(fmt.Errorf("write export: %w", err))
	}
	u.secLog.LogAdminAction(ctx, security.EventDataExport, principal.ID, principal.ID,
		map[string]interface{}{"rows": len(apps)})
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
