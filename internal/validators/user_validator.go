package validators

import (
	"regexp"
	"strings"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{9,10}$`)
)

type userValidator struct{}

func NewUserValidator() UserValidator {
	return &userValidator{}
}

func (v *userValidator) ValidateRegister(req *models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Tel = strings.TrimSpace(req.Tel)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Tel == "" {
		return apperrors.Validation("name, email, tel and password are required")
	}

	if len(req.Name) > 100 {
		return apperrors.Validation("name must be at most 100 characters")
	}

	if len(req.Password) < 6 || len(req.Password) > 100 {
		return apperrors.Validation("password must be between 6 and 100 characters")
	}

	if !isValidEmail(req.Email) {
		return apperrors.Validation("please add a valid email")
	}

	if !isValidPhone(req.Tel) {
		return apperrors.Validation("please add a valid telephone number")
	}

	switch req.Role {
	case "":
		req.Role = models.RoleUser
	case models.RoleUser, models.RoleAdmin:
	default:
		return apperrors.Validation("role must be either user or admin")
	}

	return nil
}

func (v *userValidator) ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return apperrors.Validation("please provide an email and password")
	}

	if !isValidEmail(email) {
		return apperrors.Validation("please add a valid email")
	}

	return nil
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
