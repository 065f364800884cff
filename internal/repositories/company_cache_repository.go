package repositories

import (
	"context"
	"errors"
	"net/url"
	"time"

	"interview-booking-api/internal/models"
	"interview-booking-api/pkg/cache"
	"interview-booking-api/pkg/metrics"
)

const (
	companyTTL     = time.Hour
	companyListTTL = 5 * time.Minute
)

type companyCache struct {
	cache *cache.Cache
}

// NewCompanyCache returns a Redis-backed CompanyCache.
func NewCompanyCache(c *cache.Cache) CompanyCache {
	return &companyCache{cache: c}
}

func (c *companyCache) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := c.cache.Get(ctx, cache.CompanyKey(id), &company); err != nil {
		return nil, missOrErr(err)
	}
	metrics.CacheHitsTotal.Inc()
	return &company, nil
}

func (c *companyCache) SetCompany(ctx context.Context, company *models.Company) error {
	return c.cache.Set(ctx, cache.CompanyKey(company.ID.Hex()), company, companyTTL)
}

func (c *companyCache) GetList(ctx context.Context, query url.Values) (*models.CompanyList, error) {
	var list models.CompanyList
	if err := c.cache.Get(ctx, cache.CompanyListKey(query), &list); err != nil {
		return nil, missOrErr(err)
	}
	metrics.CacheHitsTotal.Inc()
	return &list, nil
}

func (c *companyCache) SetList(ctx context.Context, query url.Values, list *models.CompanyList) error {
	key := cache.CompanyListKey(query)
	if err := c.cache.Set(ctx, key, list, companyListTTL); err != nil {
		return err
	}
	return c.cache.Track(ctx, cache.CompanyListSetKey(), key, companyListTTL)
}

// Invalidate drops the company entry and every cached listing page.
func (c *companyCache) Invalidate(ctx context.Context, id string) error {
	if err := c.cache.Delete(ctx, cache.CompanyKey(id)); err != nil {
		return err
	}
	return c.cache.InvalidateSet(ctx, cache.CompanyListSetKey())
}

func missOrErr(err error) error {
	if errors.Is(err, cache.ErrMiss) {
		metrics.CacheMissesTotal.Inc()
		return nil
	}
	return err
}

type noopCompanyCache struct{}

// NewNoopCompanyCache returns a CompanyCache that never hits, used when
// Redis is disabled.
func NewNoopCompanyCache() CompanyCache {
	return noopCompanyCache{}
}

func (noopCompanyCache) GetCompany(context.Context, string) (*models.Company, error) { return nil, nil }
func (noopCompanyCache) SetCompany(context.Context, *models.Company) error           { return nil }
func (noopCompanyCache) GetList(context.Context, url.Values) (*models.CompanyList, error) {
	return nil, nil
}
func (noopCompanyCache) SetList(context.Context, url.Values, *models.CompanyList) error { return nil }
func (noopCompanyCache) Invalidate(context.Context, string) error                       { return nil }
