package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := protected.Group("/interviews")
	{
		interviews.POST("/save", handler.Save)
		interviews.GET("/applicant/:job_id", handler.ListForJob)
		interviews.GET("/student/:student_id/history", handler.ListForStudent)
		interviews.GET("/:id", handler.GetForApplication)
		interviews.DELETE("/:id", handler.Delete)
	}
}

// Save godoc
// @Summary      Save an interview result
// @Description  Only the applicant of the application may save. Every call appends a new result.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SaveInterviewInput  true  "Result"
// @Success      201   {object}  response.Response{data=domain.InterviewResult}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interviews/save [post]
// @Security     BearerAuth
func (h *InterviewHandler) Save(c *gin.Context) {
	var req domain.SaveInterviewInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.interviewUC.Save(c.Request.Context(), principal(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview result saved", result)
}

// GetForApplication godoc
// @Summary      Latest interview result of an application
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.InterviewResult}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetForApplication(c *gin.Context) {
	result, err := h.interviewUC.GetForApplication(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview result", result)
}

// ListForJob godoc
// @Summary      Interview results for a job
// @Description  Job owner or admin
// @Tags         interviews
// @Produce      json
// @Param        job_id  path      string  true  "Job ID"
// @Success      200     {object}  response.Response{data=[]domain.InterviewResult}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /interviews/applicant/{job_id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListForJob(c *gin.Context) {
	results, err := h.interviewUC.ListForJob(c.Request.Context(), principal(c), c.Param("job_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview results", results)
}

// ListForStudent godoc
// @Summary      Interview history of a student
// @Description  The student themself or an admin
// @Tags         interviews
// @Produce      json
// @Param        student_id  path      string  true  "Student ID"
// @Success      200         {object}  response.Response{data=[]domain.InterviewResult}
// @Failure      403         {object}  response.Response
// @Router       /interviews/student/{student_id}/history [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListForStudent(c *gin.Context) {
	results, err := h.interviewUC.ListForStudent(c.Request.Context(), principal(c), c.Param("student_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview history", results)
}

// Delete godoc
// @Summary      Delete an interview result
// @Description  The applicant or an admin
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview result ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	if err := h.interviewUC.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview result deleted", nil)
}
