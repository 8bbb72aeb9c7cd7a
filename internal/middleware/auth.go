package middleware

import (
	"log"
	"net/http"
	"strings"

	"luxurystay/internal/domain"
	"luxurystay/internal/pkg/jwt"
	"luxurystay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth verifies the bearer token and stores user_id and role in the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Printf("auth_failure path=%s client_ip=%s reason=invalid_token", c.Request.URL.Path, c.ClientIP())
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		role := domain.UserRole(claims.Role)
		if !role.Valid() {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token carries an unknown role")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, string(role))
		c.Next()
	}
}

// CurrentPrincipal returns the verified caller set by JWTAuth.
func CurrentPrincipal(c *gin.Context) domain.Principal {
	return domain.Principal{
		UserID: c.GetString(ctxUserID),
		Role:   domain.UserRole(c.GetString(ctxRole)),
	}
}
