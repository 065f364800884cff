package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// XSSClean strips markup from every string in the payload, the query values
// and the route params. Strings without angle brackets are left as they are.
func XSSClean() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	strip := func(s string) string {
		if !strings.ContainsAny(s, "<>") {
			return s
		}
		return policy.Sanitize(s)
	}

	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, v := range values {
				if cleaned := strip(v); cleaned != v {
					values[i] = cleaned
					changed = true
				}
			}
			query[key] = values
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		for i := range c.Params {
			c.Params[i].Value = strip(c.Params[i].Value)
		}

		if p, ok := PayloadFrom(c); ok {
			p.Data = clean(p.Data, nil, strip)
			if err := p.commit(c); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}
