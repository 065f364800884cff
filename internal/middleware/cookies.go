package middleware

import (
	"github.com/gin-gonic/gin"
)

// CookieParser exposes the request cookies as a map on the context.
func CookieParser() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := make(map[string]string)
		for _, cookie := range c.Request.Cookies() {
			cookies[cookie.Name] = cookie.Value
		}
		c.Set(CookiesKey, cookies)
		c.Next()
	}
}
