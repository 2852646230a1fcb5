package v1

import (
	"net/http"
	"strconv"
	"strings"

	"careerai-backend/internal/delivery/http/middleware"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the body, recording a BadRequest on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err))
		return false
	}
	return true
}

// pageQuery reads skip/limit. Out-of-range values are clamped by the usecases.
func pageQuery(c *gin.Context) (offset, limit int, ok bool) {
	var err error
	if offset, err = strconv.Atoi(c.DefaultQuery("skip", "0")); err != nil || offset < 0 {
		c.Error(apperror.BadRequest("skip must be a non-negative integer"))
		return 0, 0, false
	}
	if limit, err = strconv.Atoi(c.DefaultQuery("limit", "20")); err != nil || limit < 1 || limit > 100 {
		c.Error(apperror.BadRequest("limit must be between 1 and 100"))
		return 0, 0, false
	}
	return offset, limit, true
}

func applicationStatusQuery(c *gin.Context) (*domain.ApplicationStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	st, err := domain.ParseApplicationStatus(raw)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application status"))
		return nil, false
	}
	return &st, true
}

func principal(c *gin.Context) *domain.User {
	return middleware.Principal(c)
}
