package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AnalysisHandler struct {
	analysisUC domain.AnalysisUsecase
}

func NewAnalysisHandler(protected *gin.RouterGroup, analysisUC domain.AnalysisUsecase) {
	handler := &AnalysisHandler{analysisUC: analysisUC}

	analysis := protected.Group("/analysis/resume/:id")
	{
		analysis.POST("/analyze", handler.AnalyzeResume)
		analysis.POST("/match-job/:job_id", handler.MatchJob)
		analysis.GET("/history", handler.History)
	}
}

// AnalyzeResume godoc
// @Summary      Analyze a resume
// @Description  Scores the owner's profile and resume and stores the analysis.
// @Tags         analysis
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      201  {object}  response.Response{data=domain.ResumeAnalysis}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /analysis/resume/{id}/analyze [post]
// @Security     BearerAuth
func (h *AnalysisHandler) AnalyzeResume(c *gin.Context) {
	analysis, err := h.analysisUC.AnalyzeResume(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume analyzed", analysis)
}

// MatchJob godoc
// @Summary      Match a resume against a job
// @Tags         analysis
// @Produce      json
// @Param        id      path      string  true  "Resume ID"
// @Param        job_id  path      string  true  "Job ID"
// @Success      201     {object}  response.Response{data=domain.ResumeAnalysis}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /analysis/resume/{id}/match-job/{job_id} [post]
// @Security     BearerAuth
func (h *AnalysisHandler) MatchJob(c *gin.Context) {
	analysis, err := h.analysisUC.MatchJob(c.Request.Context(), principal(c), c.Param("id"), c.Param("job_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job match analyzed", analysis)
}

// History godoc
// @Summary      Analysis history of a resume
// @Tags         analysis
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.AnalysisHistory}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /analysis/resume/{id}/history [get]
// @Security     BearerAuth
func (h *AnalysisHandler) History(c *gin.Context) {
	history, err := h.analysisUC.History(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Analysis history", history)
}
