package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := protected.Group("/applications")
	{
		// Student
		apps.POST("", handler.Apply)
		apps.GET("", handler.ListMine)
		apps.DELETE("/:id", handler.Withdraw)

		// Shared
		apps.GET("/:id", handler.Get)

		// Employer
		apps.GET("/job/:job_id/applicants", handler.ListApplicants)
		apps.PUT("/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Student only. Attaches the primary resume when resume_id is omitted.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ApplyInput  true  "Application"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyInput
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.Apply(c.Request.Context(), principal(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	status, ok := applicationStatusQuery(c)
	if !ok {
		return
	}
	apps, err := h.appUC.ListMine(c.Request.Context(), principal(c), status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// Get godoc
// @Summary      Get an application
// @Description  Visible to the applicant, the job owner and admins
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.appUC.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application details", app)
}

// ListApplicants godoc
// @Summary      List applicants of a job
// @Tags         applications
// @Produce      json
// @Param        job_id  path      string  true   "Job ID"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=domain.JobApplicants}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/job/{job_id}/applicants [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplicants(c *gin.Context) {
	status, ok := applicationStatusQuery(c)
	if !ok {
		return
	}
	result, err := h.appUC.ListApplicants(c.Request.Context(), principal(c), c.Param("job_id"), status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", result)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Job owner or admin
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      domain.UpdateStatusInput  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateStatusInput
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.appUC.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Applicant only
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.appUC.Withdraw(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
