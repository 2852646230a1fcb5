package v1

import (
	"net/http"
	"strconv"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - browsing needs no account
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - ownership is checked in the usecase
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.GET("/employer/my-jobs", handler.ListMine)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
		protectedJobs.POST("/:id/close", handler.Close)
	}
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a new job posting (Employer only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobInput
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), principal(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List jobs
// @Description  Active jobs by default. Returns an empty page while storage is unavailable.
// @Tags         jobs
// @Produce      json
// @Param        location   query     string  false  "Location substring"
// @Param        job_type   query     string  false  "Full-time, Part-time, Contract, Remote, Internship"
// @Param        keyword    query     string  false  "Search in title and description"
// @Param        is_active  query     bool    false  "Default true"
// @Param        skip       query     int     false  "Records to skip"
// @Param        limit      query     int     false  "Page size (1-100, default 20)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	offset, limit, ok := pageQuery(c)
	if !ok {
		return
	}
	filter := domain.JobFilter{
		Location: c.Query("location"),
		Keyword:  c.Query("keyword"),
		Offset:   offset,
		Limit:    limit,
	}
	if raw := c.Query("job_type"); raw != "" {
		jt, err := domain.ParseJobType(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid job type"))
			return
		}
		filter.JobType = &jt
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(apperror.BadRequest("is_active must be true or false"))
			return
		}
		filter.IsActive = &active
	}

	result, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// ListMine godoc
// @Summary      List own job postings
// @Description  Active and closed jobs posted by the authenticated employer
// @Tags         jobs
// @Produce      json
// @Param        skip   query     int  false  "Records to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Failure      403    {object}  response.Response
// @Router       /jobs/employer/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	offset, limit, ok := pageQuery(c)
	if !ok {
		return
	}
	result, err := h.jobUC.ListMyJobs(c.Request.Context(), principal(c), offset, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer jobs retrieved", result)
}

// Update godoc
// @Summary      Update a job
// @Description  Partial update (owner or admin)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var patch domain.JobPatch
	if !bindJSON(c, &patch) {
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), principal(c), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Removes the job with its applications and interview results
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Close godoc
// @Summary      Close a job
// @Description  Stops accepting applications
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/close [post]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	job, err := h.jobUC.CloseJob(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job closed", job)
}
