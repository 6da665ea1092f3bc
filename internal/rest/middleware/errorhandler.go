package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
)

// ErrorHandler converts errors attached via c.Error into the standard JSON
// error body. Handlers return early after c.Error, so only the last error is
// rendered. Raw error messages are exposed in development mode only.
func ErrorHandler(cfg *config.Configuration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}

		c.AbortWithStatusJSON(status, ierr.NewErrorResponse(err, cfg.IsDevelopment()))
	}
}
