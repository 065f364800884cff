package middleware

import (
	"interview-booking-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Keys under which the middleware chain stores request state on the gin context.
const (
	RequestIDKey     = "request_id"
	PayloadKey       = "body"
	PollutedQueryKey = "query_polluted"
	PollutedBodyKey  = "body_polluted"
	CookiesKey       = "cookies"
	UserKey          = "user"
)

// CurrentUser returns the user attached by Protect, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// Cookies returns the cookie map attached by CookieParser.
func Cookies(c *gin.Context) map[string]string {
	if v, ok := c.Get(CookiesKey); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return map[string]string{}
}

// abortWithError records err, writes the error response and stops the chain.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	renderError(c, err)
}
