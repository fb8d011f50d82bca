package middleware

import (
	"github.com/gin-gonic/gin"

	"artplatform-backend/internal/shared/response"
)

// AdminMiddleware gates the /admin route group. Runs after AuthMiddleware,
// which put the token's role on the context.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
