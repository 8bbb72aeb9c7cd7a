package middleware

import (
	"net/http"

	"luxurystay/internal/domain"
	"luxurystay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if !allowed[domain.UserRole(role.(string))] {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// StaffOnly admits every role except guest.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(
		domain.RoleReceptionist,
		domain.RoleHousekeeping,
		domain.RoleHotelStaff,
		domain.RoleManager,
		domain.RoleAdmin,
	)
}

func ManagerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleManager, domain.RoleAdmin)
}
