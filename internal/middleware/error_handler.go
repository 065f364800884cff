package middleware

import (
	"fmt"

	"interview-booking-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached to the context.
// It sits at the end of the global chain so outer middleware (logging,
// metrics) observe the final status.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		renderError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panicking handler into a 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		abortWithError(c, fmt.Errorf("panic: %v", recovered))
	})
}

func renderError(c *gin.Context, err error) {
	appErr := utils.LogAndMapError(err, "request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"request_id", c.GetString(RequestIDKey))

	c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
		"success": false,
		"error": gin.H{
			"message": appErr.UserMessage,
			"code":    appErr.Code,
		},
	})
}
