package validators

import (
	"interview-booking-api/internal/models"
)

type UserValidator interface {
	ValidateRegister(req *models.RegisterRequest) error
	ValidateLogin(email, password string) error
}

type CompanyValidator interface {
	ValidateCreate(input *models.CompanyInput) error
	ValidateUpdate(input *models.CompanyInput) error
}

type BookingValidator interface {
	ValidateBooking(input *models.BookingInput) error
}
