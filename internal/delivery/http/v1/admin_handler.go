package v1

import (
	"fmt"
	"net/http"
	"time"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		// Dashboard stats
		admin.GET("/stats", handler.GetStats)

		// User management
		admin.GET("/users", handler.ListUsers)
		admin.PUT("/users/:id/status", handler.UpdateUserStatus)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.GET("/pending-approvals", handler.PendingApprovals)
		admin.POST("/approve-employer/:id", handler.ApproveEmployer)

		// Job moderation
		admin.DELETE("/jobs/:id", handler.DeleteJob)

		// Applications
		admin.GET("/applications", handler.ListApplications)
		admin.GET("/applications/export", handler.ExportApplications)
	}
}

// GetStats godoc
// @Summary      Get admin dashboard statistics
// @Description  Returns counts for users, jobs, and applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context(), principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Dashboard statistics", stats)
}

// ListUsers godoc
// @Summary      List all users
// @Description  Returns paginated list of users with optional role and status filters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "STUDENT, EMPLOYER or ADMIN"
// @Param        status  query     string  false  "Active, Inactive, Pending or Suspended"
// @Param        skip    query     int     false  "Records to skip"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response{data=domain.PaginatedResult[domain.User]}
// @Failure      403     {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	offset, limit, ok := pageQuery(c)
	if !ok {
		return
	}
	filter := domain.UserFilter{Offset: offset, Limit: limit}
	if raw := c.Query("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid role"))
			return
		}
		filter.Role = &role
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseUserStatus(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid user status"))
			return
		}
		filter.Status = &status
	}

	result, err := h.adminUC.ListUsers(c.Request.Context(), principal(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users list", result)
}

// UpdateUserStatus godoc
// @Summary      Change an account status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "User ID"
// @Param        body  body      domain.UpdateUserStatusInput  true  "New status"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/users/{id}/status [put]
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req domain.UpdateUserStatusInput
	if !bindJSON(c, &req) {
		return
	}
	status, err := domain.ParseUserStatus(req.Status)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid user status"))
		return
	}

	user, err := h.adminUC.UpdateUserStatus(c.Request.Context(), principal(c), c.Param("id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User status updated", user)
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the account with its jobs, applications, resumes and interview results. Other admins cannot be deleted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminUC.DeleteUser(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}

// PendingApprovals godoc
// @Summary      Employers awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Router       /admin/pending-approvals [get]
func (h *AdminHandler) PendingApprovals(c *gin.Context) {
	users, err := h.adminUC.PendingApprovals(c.Request.Context(), principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending approvals", users)
}

// ApproveEmployer godoc
// @Summary      Approve an employer account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/approve-employer/{id} [post]
func (h *AdminHandler) ApproveEmployer(c *gin.Context) {
	user, err := h.adminUC.ApproveEmployer(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer approved", user)
}

// DeleteJob godoc
// @Summary      Delete any job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [delete]
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	if err := h.adminUC.DeleteJob(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ListApplications godoc
// @Summary      List all applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        skip    query     int     false  "Records to skip"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  response.Response{data=domain.PaginatedResult[domain.Application]}
// @Router       /admin/applications [get]
func (h *AdminHandler) ListApplications(c *gin.Context) {
	offset, limit, ok := pageQuery(c)
	if !ok {
		return
	}
	status, ok := applicationStatusQuery(c)
	if !ok {
		return
	}

	result, err := h.adminUC.ListApplications(c.Request.Context(), principal(c), domain.ApplicationFilter{
		Status: status,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications list", result)
}

// ExportApplications godoc
// @Summary      Export applications as a spreadsheet
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Success      200     {file}  file
// @Router       /admin/applications/export [get]
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	status, ok := applicationStatusQuery(c)
	if !ok {
		return
	}

	data, err := h.adminUC.ExportApplications(c.Request.Context(), principal(c), status)
	if err != nil {
		c.Error(err)
		return
	}
	filename := fmt.Sprintf("applications-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
