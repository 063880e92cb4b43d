package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/response"
)

// RequireCapability returns a middleware that allows only actors whose role
// satisfies the given capability predicate (e.g. models.Role.CanManageNotices).
func RequireCapability(allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !allowed(actor.Role) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
