package middleware

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/logger"
	"careerai-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error recorded by a handler. Denied access by
// an authenticated principal is also written to the security log.
func ErrorHandler(secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		appErr, ok := apperror.As(err)
		if ok && appErr.Code < http.StatusInternalServerError {
			if appErr.Code == http.StatusForbidden {
				secLog.LogForbiddenAccess(c.Request.Context(), c.GetString(string(domain.KeyUserID)),
					c.ClientIP(), c.GetString(string(domain.KeyRequestID)), c.FullPath())
			}
			response.Fail(c, appErr)
			return
		}

		// Server-side failures are logged in full and reported generically.
		logger.Log.Error("Request failed",
			"error", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
			"request_id", c.GetString(string(domain.KeyRequestID)),
		)
		if ok && appErr.Code == http.StatusServiceUnavailable {
			response.Fail(c, appErr)
			return
		}
		response.Fail(c, apperror.New(http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", err))
	}
}
