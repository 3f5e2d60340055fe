package middleware

import (
	"context"
	"net/http"

	"expertbridge/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := Role(c)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Role not found in token")
			return
		}

		if _, ok := allowed[role]; !ok {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// AdminChecker answers allow-list membership.
type AdminChecker interface {
	IsAdmin(ctx context.Context, profileID string) (bool, error)
}

// RequireAdmin gates a route on admin membership, independent of role.
func RequireAdmin(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Login required")
			return
		}

		ok, err := admins.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
			return
		}
		if !ok {
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}
