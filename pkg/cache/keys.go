package cache

import (
	"fmt"
	"net/url"
)

// cache key for a single company.
func CompanyKey(id string) string {
	return fmt.Sprintf("company:%s", id)
}

// cache key for one page of the company listing; query is the encoded,
// already-sanitized query string.
func CompanyListKey(query url.Values) string {
	return fmt.Sprintf("companies:list:%s", query.Encode())
}

// cache key for the set of list keys that must be dropped when any company changes.
func CompanyListSetKey() string {
	return "companies:list:keys"
}

// cache key for a rate-limit window counter.
func RateLimitKey(prefix, identity string) string {
	return prefix + identity
}
