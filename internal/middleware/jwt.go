package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adstack/admin-backend/internal/auth"
	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/response"
)

// ContextActor is the key for the resolved actor in gin context.
const ContextActor = "actor"

// JWT returns a middleware that validates the bearer token and resolves the
// actor into the request context. Every protected operation receives the
// actor explicitly; nothing downstream re-reads auth headers.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextActor, claims.Actor())
		c.Next()
	}
}

// ActorFrom returns the actor resolved by the JWT middleware.
func ActorFrom(c *gin.Context) models.Actor {
	return c.MustGet(ContextActor).(models.Actor)
}
