package utils

import (
	"fmt"
	"net/url"
	"strconv"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	MaxLimit     = 100
)

// ParsePage reads page and limit from the query, falling back to the defaults.
func ParsePage(params url.Values) (page, limit int, err error) {
	page, limit = DefaultPage, DefaultLimit
	if raw := params.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page %q: %w", raw, apperrors.ErrInvalidParameter)
		}
	}
	if raw := params.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("limit %q: %w", raw, apperrors.ErrInvalidParameter)
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	return page, limit, nil
}

// BuildPagination returns the next/prev page references for a listing of
// total documents.
func BuildPagination(page, limit int, total int64) models.Pagination {
	var p models.Pagination
	startIndex := (page - 1) * limit
	endIndex := page * limit
	if int64(endIndex) < total {
		p.Next = &models.PageRef{Page: page + 1, Limit: limit}
	}
	if startIndex > 0 {
		p.Prev = &models.PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
