package validators

import (
	"net/url"
	"strings"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
)

const maxCompanyNameLength = 50

type companyValidator struct{}

func NewCompanyValidator() CompanyValidator {
	return &companyValidator{}
}

func (v *companyValidator) ValidateCreate(input *models.CompanyInput) error {
	trimCompany(input)
	if input.Name == "" || input.Address == "" || input.Website == "" || input.Description == "" || input.Tel == "" {
		return apperrors.Validation("name, address, website, description and tel are required")
	}
	return v.validateFields(input)
}

// ValidateUpdate accepts partial input; only the provided fields are checked.
func (v *companyValidator) ValidateUpdate(input *models.CompanyInput) error {
	trimCompany(input)
	if *input == (models.CompanyInput{}) {
		return apperrors.Validation("no fields to update")
	}
	return v.validateFields(input)
}

func (v *companyValidator) validateFields(input *models.CompanyInput) error {
	if len(input.Name) > maxCompanyNameLength {
		return apperrors.Validation("name can not be more than 50 characters")
	}
	if input.Website != "" {
		u, err := url.Parse(input.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.Validation("please add a valid website URL with http or https")
		}
	}
	if input.Tel != "" && !isValidPhone(input.Tel) {
		return apperrors.Validation("please add a valid telephone number")
	}
	return nil
}

func trimCompany(input *models.CompanyInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.Website = strings.TrimSpace(input.Website)
	input.Description = strings.TrimSpace(input.Description)
	input.Tel = strings.TrimSpace(input.Tel)
}
