package middleware

import (
	"net/http"

	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into a principal. The identity is
// reloaded from storage on every request, so role and status are never taken
// from token claims.
func AuthMiddleware(authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return func(c *gin.Context) {
		principal, err := authUC.ResolvePrincipal(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if apperror.Is(err, http.StatusUnauthorized) {
				secLog.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"),
					c.GetString(string(domain.KeyRequestID)), c.FullPath(), err.Error())
			}
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipal), principal)
		c.Set(string(domain.KeyUserID), principal.ID)
		c.Set(string(domain.KeyUserEmail), principal.Email)
		c.Set(string(domain.KeyUserRole), string(principal.Role))
		c.Next()
	}
}

// Principal returns the identity stored by AuthMiddleware, or nil.
func Principal(c *gin.Context) *domain.User {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
