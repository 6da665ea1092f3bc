package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/types"
)

// AuthMiddleware verifies the Bearer token and stores the caller's identity
// on the request context.
func AuthMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(types.HeaderAuthorization)
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			abortUnauthenticated(c)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ierr.NewErrorf("unexpected signing method: %v", t.Header["alg"]).
					Mark(ierr.ErrPermissionDenied)
			}
			return []byte(cfg.Auth.Secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c)
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			abortUnauthenticated(c)
			return
		}
		role, _ := claims["role"].(string)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, userID)
		ctx = context.WithValue(ctx, types.CtxUserRole, types.UserRole(role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminRequired rejects callers without the admin role. Must run after
// AuthMiddleware.
func AdminRequired(c *gin.Context) {
	if types.GetUserRole(c.Request.Context()) != types.UserRoleAdmin {
		err := ierr.NewError("admin access required").
			WithHint("This endpoint requires an admin account").
			Mark(ierr.ErrPermissionDenied)
		c.AbortWithStatusJSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err, false))
		return
	}
	c.Next()
}

func abortUnauthenticated(c *gin.Context) {
	err := ierr.NewError("authentication required").
		WithHint("Provide a valid Bearer token").
		Mark(ierr.ErrPermissionDenied)
	c.AbortWithStatusJSON(401, ierr.NewErrorResponse(err, false))
}
