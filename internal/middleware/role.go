package middleware

import (
	"net/http"

	"fleet-device-manager/pkg/utils"

	"github.com/gin-gonic/gin"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// AdminOnly restricts a route to fleet administrators.
func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

// OperatorOrAdmin restricts a route to warehouse operators and administrators.
func OperatorOrAdmin() gin.HandlerFunc {
	return RoleMiddleware("operator", "admin")
}
