package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-report-api/pkg/auth"
	"github.com/jwalitptl/clinic-report-api/pkg/httputil"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

type AuthMiddleware struct {
	jwt          auth.JWTService
	allowedRoles map[string]struct{}
}

func NewAuthMiddleware(jwt auth.JWTService, allowedRoles []string) *AuthMiddleware {
	roles := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roles[strings.ToLower(r)] = struct{}{}
	}
	return &AuthMiddleware{jwt: jwt, allowedRoles: roles}
}

// Authenticate verifies the bearer token and sets the caller in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithMessage(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondWithMessage(c, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			httputil.RespondWithMessage(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole admits callers whose role is in the allowed set. An empty set
// admits every authenticated caller.
func (m *AuthMiddleware) RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.allowedRoles) == 0 {
			c.Next()
			return
		}

		if _, ok := m.allowedRoles[strings.ToLower(c.GetString(ContextRole))]; !ok {
			httputil.RespondWithMessage(c, http.StatusForbidden, "permission denied")
			return
		}
		c.Next()
	}
}
