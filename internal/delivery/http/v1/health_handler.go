package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Service health
// @Description  503 when the database is unreachable; optional dependencies only degrade the status.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.HealthStatus}
// @Failure      503  {object}  response.Response{data=domain.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if !status.Healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "Service unavailable",
			Data:      status,
			RequestID: c.GetString(string(domain.KeyRequestID)),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", status)
}
