package response

import (
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody lets clients branch on the failure category instead of the message.
type ErrorBody struct {
	Kind   apperror.Kind `json:"kind"`
	Status int           `json:"status"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Fail renders err with its own status and message. Callers only pass
// errors whose message is fit for clients.
func Fail(c *gin.Context, err *apperror.AppError) {
	c.JSON(err.Code, Response{
		Success:   false,
		Message:   err.Message,
		Error:     &ErrorBody{Kind: err.Kind(), Status: err.Code},
		RequestID: requestID(c),
	})
}
