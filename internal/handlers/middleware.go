package handlers

import (
	"net/http"
	"strings"

	"invoice-service/internal/models"
	"invoice-service/internal/services"
	"invoice-service/utils"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

type Middleware struct {
	userService services.IUserService
}

func NewMiddleware(userService services.IUserService) *Middleware {
	return &Middleware{userService: userService}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// stores its claims on the context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				utils.CreateErrorResponse("MISSING_TOKEN", "Access denied. No token provided"))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := m.userService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		if claims == nil || claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				utils.CreateErrorResponse("FORBIDDEN", "Access denied. Admins only"))
			return
		}
		c.Next()
	}
}

func claimsFrom(c *gin.Context) *models.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*models.Claims)
	return claims
}
