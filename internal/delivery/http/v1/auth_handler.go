package v1

import (
	"net/http"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, strict gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/signup", strict, handler.Signup)
		publicAuth.POST("/login", strict, handler.Login)
		publicAuth.POST("/refresh", handler.Refresh)
		publicAuth.POST("/verify-token", handler.VerifyToken)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a student or employer account and returns a token pair. Employers start Pending.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SignupInput  true  "Signup payload"
// @Success      201   {object}  response.Response{data=domain.TokenPair}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupInput
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authUC.Signup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Account created", tokens)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginInput  true  "Credentials"
// @Success      200   {object}  response.Response{data=domain.TokenPair}
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	req.ClientIP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")
	req.RequestID = c.GetString(string(domain.KeyRequestID))

	tokens, err := h.authUC.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", tokens)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshRequest  true  "Refresh token"
// @Success      200   {object}  response.Response{data=domain.TokenPair}
// @Failure      401   {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authUC.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Token refreshed", tokens)
}

// VerifyToken godoc
// @Summary      Check whether a token is valid
// @Description  Accepts the token in the JSON body or as the `token` query parameter.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  query     string              false  "Token"
// @Param        body   body      VerifyTokenRequest  false  "Token"
// @Success      200    {object}  response.Response{data=domain.TokenInfo}
// @Failure      401    {object}  response.Response
// @Router       /auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" && c.Request.ContentLength != 0 {
		var req VerifyTokenRequest
		if !bindJSON(c, &req) {
			return
		}
		token = req.Token
	}
	if token == "" {
		c.Error(apperror.BadRequest("Token is required"))
		return
	}

	info, err := h.authUC.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Token is valid", info)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, "Current user", principal(c))
}
