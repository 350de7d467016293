package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
)

// Auth checks for a valid Bearer token in the Authorization header against
// the statically configured admin keys. No keys configured means the admin
// surface is open (local deployments).
func Auth(validKeys []string) gin.HandlerFunc {
	keys := make(map[string]bool, len(validKeys))
	for _, k := range validKeys {
		keys[k] = true
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			problem := domain.UnauthorizedError("Missing Authorization header")
			c.AbortWithStatusJSON(problem.Status, problem)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			problem := domain.UnauthorizedError("Invalid Authorization header format")
			c.AbortWithStatusJSON(problem.Status, problem)
			return
		}

		if !keys[parts[1]] {
			problem := domain.UnauthorizedError("Invalid API key")
			c.AbortWithStatusJSON(problem.Status, problem)
			return
		}

		c.Next()
	}
}
