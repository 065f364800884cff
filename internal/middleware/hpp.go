package middleware

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

// HPP collapses repeated query parameters (and form fields) to their last
// value. The original values are kept on the context under
// PollutedQueryKey and PollutedBodyKey.
func HPP() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		polluted := url.Values{}
		for key, values := range query {
			if len(values) > 1 {
				polluted[key] = values
				query[key] = values[len(values)-1:]
			}
		}
		if len(polluted) > 0 {
			c.Set(PollutedQueryKey, polluted)
			c.Request.URL.RawQuery = query.Encode()
		}

		if p, ok := PayloadFrom(c); ok && p.Kind == formPayload {
			fields, _ := p.Data.(map[string]interface{})
			pollutedBody := map[string]interface{}{}
			for key, v := range fields {
				items, ok := v.([]interface{})
				if !ok {
					continue
				}
				if len(items) > 1 {
					pollutedBody[key] = items
				}
				if len(items) > 0 {
					fields[key] = items[len(items)-1]
				}
			}
			if len(pollutedBody) > 0 {
				c.Set(PollutedBodyKey, pollutedBody)
			}
			if err := p.commit(c); err != nil {
				abortWithError(c, err)
				return
			}
		}
		c.Next()
	}
}
