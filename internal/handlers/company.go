package handlers

import (
	"fmt"
	"net/http"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/services"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// CompanyResponse wraps a single company
type CompanyResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    models.Company `json:"data"`
}

// GetCompanies godoc
// @Summary List companies
// @Description Paginated company listing. Remaining query keys filter on company fields; field[gt|gte|lt|lte|in] selects an operator.
// @Tags Companies
// @Produce json
// @Param select query string false "Comma separated fields to return"
// @Param sort query string false "Comma separated sort fields, prefix - for descending" default(-createdAt)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(25)
// @Success 200 {object} models.CompanyList
// @Failure 400 {object} ErrorResponse
// @Router /companies [get]
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	list, err := h.companyService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetCompany godoc
// @Summary Get company by ID
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CompanyResponse{Success: true, Data: *company})
}

// CreateCompany godoc
// @Summary Create a company
// @Tags Companies
// @Accept json
// @Produce json
// @Param company body models.CompanyInput true "Company data"
// @Security BearerAuth
// @Success 201 {object} CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var input models.CompanyInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(fmt.Errorf("bind company: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, CompanyResponse{Success: true, Data: *company})
}

// UpdateCompany godoc
// @Summary Update a company
// @Tags Companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param company body models.CompanyInput true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} CompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var input models.CompanyInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(fmt.Errorf("bind company: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CompanyResponse{Success: true, Data: *company})
}

// DeleteCompany godoc
// @Summary Delete a company
// @Description Deletes the company together with all of its bookings
// @Tags Companies
// @Produce json
// @Param id path string true "Company ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
