package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// CronSecretMiddleware guards the cron endpoints with a shared secret header.
// With no secret configured the endpoints are open, which is only acceptable
// in development.
func CronSecretMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.Auth.CronSecret
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(types.HeaderCronSecret)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			err := ierr.NewError("invalid cron secret").
				WithHint("The cron secret header is missing or wrong").
				Mark(ierr.ErrPermissionDenied)
			c.AbortWithStatusJSON(http.StatusForbidden, ierr.NewErrorResponse(err, false))
			return
		}

		c.Next()
	}
}
