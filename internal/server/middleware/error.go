package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
	"go.uber.org/zap"
)

// ErrorHandler serializes errors attached by handlers into RFC 9457 problem
// responses.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var problem *domain.Problem
		if errors.As(err, &problem) {
			if problem.Log != nil {
				logger.Error("Internal error", zap.Error(problem.Log), zap.String("path", c.Request.URL.Path))
			}
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		// unknown error shape, catch-all 500
		logger.Error("Unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, domain.NewProblem(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
