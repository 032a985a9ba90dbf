package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Access denied. No token provided.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Access denied. No token provided.")
			return
		}

		id, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid token")
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUserEmail, id.Email)
		c.Set(ContextUserRole, id.Role)

		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAdmin() {
			abort(c, http.StatusForbidden, "admin_only", "Access denied. Admin only.")
			return
		}
		c.Next()
	}
}

// IdentityFrom reads the identity AuthMiddleware stored on the context.
func IdentityFrom(c *gin.Context) auth.Identity {
	return auth.Identity{
		UserID: c.GetString(ContextUserID),
		Email:  c.GetString(ContextUserEmail),
		Role:   c.GetString(ContextUserRole),
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{Code: code, Message: message})
}
