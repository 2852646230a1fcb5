package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	public.GET("/users/:id", handler.GetPublicProfile)

	users := protected.Group("/users")
	{
		users.GET("/profile", handler.GetProfile)
		users.PUT("/profile", handler.UpdateProfile)
		users.DELETE("/:id", handler.DeleteAccount)
	}
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userUC.GetProfile(c.Request.Context(), principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Only the fields present in the body change. Role, status and email are not editable here.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.UserPatch  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch domain.UserPatch
	if !bindJSON(c, &patch) {
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), principal(c), patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// GetPublicProfile godoc
// @Summary      Public profile of a user
// @Description  Contact details, status and grades are not included.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.PublicProfile}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.userUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User", profile)
}

// DeleteAccount godoc
// @Summary      Delete an account
// @Description  Users may delete their own account. Admins may delete any account except another admin.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userUC.DeleteAccount(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}
