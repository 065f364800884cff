package middleware

import (
	"context"
	"fmt"
	"strings"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Protect requires a valid token from the Authorization header or the
// token cookie and attaches the user to the context.
func Protect(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		} else if cookie := Cookies(c)["token"]; cookie != "" && cookie != "none" {
			token = cookie
		}
		if token == "" {
			abortWithError(c, apperrors.Unauthorized("no token supplied"))
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// Authorize lets only the listed roles through. Must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWithError(c, apperrors.Unauthorized("no authenticated user"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abortWithError(c, apperrors.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", user.Role)))
	}
}
