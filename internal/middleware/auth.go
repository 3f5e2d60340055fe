package middleware

import (
	"context"
	"net/http"
	"strings"

	"expertbridge/internal/pkg/jwt"
	"expertbridge/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxClaims = "claims"
)

// RevocationChecker reports whether a token id was revoked by sign-out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the bearer token and stores user_id, role and claims on
// the gin context. revoked may be nil.
func JWTAuth(j *jwt.Service, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid Authorization header format")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Empty token")
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token")
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				zap.L().Error("revocation lookup failed", zap.String("jti", claims.ID), zap.Error(err))
				response.Abort(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
				return
			}
			if isRevoked {
				response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Session has ended")
				return
			}
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// UserID returns the authenticated profile id, or "" outside JWTAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// Role returns the role carried in the token.
func Role(c *gin.Context) string {
	return c.GetString(ctxRole)
}

func Claims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ctxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
