package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// isOperatorKey reports whether key could smuggle a MongoDB operator or a
// dotted path into a query. Bracketed query keys such as price[$gt] are
// checked segment by segment.
func isOperatorKey(key string) bool {
	if strings.Contains(key, ".") {
		return true
	}
	for _, segment := range strings.FieldsFunc(key, func(r rune) bool { return r == '[' || r == ']' }) {
		if strings.HasPrefix(segment, "$") {
			return true
		}
	}
	return false
}

// MongoSanitize strips operator keys from the body payload and the query.
func MongoSanitize() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		removed := false
		for key := range query {
			if isOperatorKey(key) {
				delete(query, key)
				removed = true
			}
		}
		if removed {
			c.Request.URL.RawQuery = query.Encode()
		}

		if p, ok := PayloadFrom(c); ok {
			p.Data = clean(p.Data, isOperatorKey, nil)
			if err := p.commit(c); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}
