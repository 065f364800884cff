package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/repositories"
	"interview-booking-api/internal/utils"
	"interview-booking-api/internal/validators"
	"interview-booking-api/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// companyFields lists the fields that may be filtered, selected or sorted on.
	companyFields = map[string]bool{
		"_id":         true,
		"name":        true,
		"address":     true,
		"website":     true,
		"description": true,
		"tel":         true,
		"createdAt":   true,
	}
	reservedParams = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}
	operatorKey    = regexp.MustCompile(`^([A-Za-z_]+)\[(gt|gte|lt|lte|in)\]$`)
)

type CompanyService struct {
	repo      repositories.CompanyRepository
	bookings  repositories.BookingRepository
	cache     repositories.CompanyCache
	validator validators.CompanyValidator
}

func NewCompanyService(repo repositories.CompanyRepository, bookings repositories.BookingRepository,
	cache repositories.CompanyCache, validator validators.CompanyValidator) *CompanyService {
	return &CompanyService{
		repo:      repo,
		bookings:  bookings,
		cache:     cache,
		validator: validator,
	}
}

// ParseCompanyQuery turns listing query parameters into a CompanyQuery.
// Bracketed keys such as createdAt[gte] become comparison operators.
func ParseCompanyQuery(params url.Values) (*models.CompanyQuery, error) {
	page, limit, err := utils.ParsePage(params)
	if err != nil {
		return nil, err
	}

	q := &models.CompanyQuery{
		Filter: map[string]interface{}{},
		Sort:   []string{"-createdAt"},
		Page:   page,
		Limit:  limit,
	}

	if raw := params.Get("select"); raw != "" {
		fields, err := fieldList(raw, false)
		if err != nil {
			return nil, err
		}
		q.Select = fields
	}
	if raw := params.Get("sort"); raw != "" {
		fields, err := fieldList(raw, true)
		if err != nil {
			return nil, err
		}
		q.Sort = fields
	}

	for key, values := range params {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		value := values[len(values)-1]

		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], m[2]
			if !companyFields[field] {
				return nil, fmt.Errorf("filter field %q: %w", field, apperrors.ErrInvalidParameter)
			}
			cond, _ := q.Filter[field].(map[string]interface{})
			if cond == nil {
				cond = map[string]interface{}{}
			}
			if op == "in" {
				in := []interface{}{}
				for _, v := range strings.Split(value, ",") {
					in = append(in, filterValue(field, strings.TrimSpace(v)))
				}
				cond["$in"] = in
			} else {
				cond["$"+op] = filterValue(field, value)
			}
			q.Filter[field] = cond
			continue
		}

		if !companyFields[key] {
			return nil, fmt.Errorf("filter field %q: %w", key, apperrors.ErrInvalidParameter)
		}
		q.Filter[key] = filterValue(key, value)
	}
	return q, nil
}

func fieldList(raw string, sorting bool) ([]string, error) {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		name := f
		if sorting {
			name = strings.TrimPrefix(f, "-")
		}
		if !companyFields[name] {
			return nil, fmt.Errorf("field %q: %w", name, apperrors.ErrInvalidParameter)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// filterValue converts a query value to the stored type of field.
func filterValue(field, value string) interface{} {
	switch field {
	case "createdAt":
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t
		}
	case "_id":
		if oid, err := primitive.ObjectIDFromHex(value); err == nil {
			return oid
		}
	}
	return value
}

// List returns one page of companies, served from the cache when possible.
func (s *CompanyService) List(ctx context.Context, params url.Values) (*models.CompanyList, error) {
	if cached, err := s.cache.GetList(ctx, params); err != nil {
		logger.GlobalLogger.Errorf("company list cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	q, err := ParseCompanyQuery(params)
	if err != nil {
		return nil, err
	}

	companies, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	list := &models.CompanyList{
		Success:    true,
		Count:      len(companies),
		Pagination: utils.BuildPagination(q.Page, q.Limit, total),
		Data:       companies,
	}
	if err := s.cache.SetList(ctx, params, list); err != nil {
		logger.GlobalLogger.Errorf("company list cache write failed: %v", err)
	}
	return list, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if cached, err := s.cache.GetCompany(ctx, id); err != nil {
		logger.GlobalLogger.Errorf("company cache read failed for %s: %v", id, err)
	} else if cached != nil {
		return cached, nil
	}

	company, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("company", id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCompany(ctx, company); err != nil {
		logger.GlobalLogger.Errorf("company cache write failed for %s: %v", id, err)
	}
	return company, nil
}

func (s *CompanyService) Create(ctx context.Context, input *models.CompanyInput) (*models.Company, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, err
	}
	company := &models.Company{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Address:     input.Address,
		Website:     input.Website,
		Description: input.Description,
		Tel:         input.Tel,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	s.invalidate(ctx, company.ID.Hex())
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id string, input *models.CompanyInput) (*models.Company, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(input); err != nil {
		return nil, err
	}
	company, err := s.repo.Update(ctx, oid, input)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("company", id)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return company, nil
}

// Delete removes the company and every booking made with it.
func (s *CompanyService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("company", id)
		}
		return err
	}

	removed, err := s.bookings.DeleteByCompany(ctx, oid)
	if err != nil {
		return fmt.Errorf("cascade delete for company %s: %w", id, err)
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("company", id)
		}
		return err
	}
	logger.GlobalLogger.Printf("Deleted company %s and %d bookings", id, removed)
	s.invalidate(ctx, id)
	return nil
}

func (s *CompanyService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.GlobalLogger.Errorf("company cache invalidation failed for %s: %v", id, err)
	}
}
