package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/security"
	"careerai-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const multipartOverhead = 1 << 20

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
	limiter  *security.UploadLimiter
	maxBytes int64
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, limiter *security.UploadLimiter, maxBytes int64) {
	handler := &ResumeHandler{resumeUC: resumeUC, limiter: limiter, maxBytes: maxBytes}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("/upload", handler.Upload)
		resumes.GET("", handler.List)
		resumes.GET("/:id", handler.Get)
		resumes.GET("/:id/download", handler.Download)
		resumes.PUT("/:id", handler.Update)
		resumes.DELETE("/:id", handler.Delete)
	}
}

type UpdateResumeRequest struct {
	IsPrimary *bool `json:"is_primary" binding:"required"`
}

// Upload godoc
// @Summary      Upload a resume
// @Description  PDF, DOC, DOCX or TXT. The first resume becomes primary.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      201   {object}  response.Response{data=domain.Resume}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /resumes/upload [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	p := principal(c)
	userID := ""
	if p != nil {
		userID = p.ID
	}

	allowed, retryAfter, err := h.limiter.AllowUpload(c.Request.Context(), c.ClientIP(), userID)
	if err != nil {
		logger.Log.Warn("Upload limiter unavailable", "error", err)
	}
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Error(apperror.TooManyRequests("Too many uploads. Please try again later."))
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(h.tooLarge())
			return
		}
		c.Error(apperror.BadRequest("A resume file is required in the 'file' field"))
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		c.Error(h.tooLarge())
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Could not read uploaded file"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.Error(apperror.BadRequest("Could not read uploaded file"))
		return
	}

	resume, err := h.resumeUC.Upload(c.Request.Context(), p, domain.UploadInput{
		FileName: fileHeader.Filename,
		Content:  content,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded", resume)
}

func (h *ResumeHandler) tooLarge() error {
	return apperror.New(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("File too large. Maximum size is %d MB", h.maxBytes>>20), nil)
}

// List godoc
// @Summary      List own resumes
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Resume}
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.resumeUC.List(c.Request.Context(), principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes retrieved", resumes)
}

// Get godoc
// @Summary      Get resume metadata
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
// @Security     BearerAuth
func (h *ResumeHandler) Get(c *gin.Context) {
	resume, err := h.resumeUC.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume details", resume)
}

// Download godoc
// @Summary      Download a resume file
// @Tags         resumes
// @Produce      octet-stream
// @Param        id   path  string  true  "Resume ID"
// @Success      200  {file}    file
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/download [get]
// @Security     BearerAuth
func (h *ResumeHandler) Download(c *gin.Context) {
	resume, body, err := h.resumeUC.Download(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, resume.FileSize, storage.ContentTypeFor(resume.FileType), body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", resume.FileName),
	})
}

// Update godoc
// @Summary      Make a resume primary
// @Description  Only promotion is supported; every student keeps exactly one primary resume.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Resume ID"
// @Param        body  body      UpdateResumeRequest  true  "Flags"
// @Success      200   {object}  response.Response{data=domain.Resume}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /resumes/{id} [put]
// @Security     BearerAuth
func (h *ResumeHandler) Update(c *gin.Context) {
	var req UpdateResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	if !*req.IsPrimary {
		c.Error(apperror.BadRequest("Set another resume as primary instead of clearing the flag"))
		return
	}

	resume, err := h.resumeUC.SetPrimary(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Primary resume updated", resume)
}

// Delete godoc
// @Summary      Delete a resume
// @Description  Applications keep existing without the attachment
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumeUC.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted", nil)
}
