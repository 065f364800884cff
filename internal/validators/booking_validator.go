package validators

import (
	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
)

type bookingValidator struct{}

func NewBookingValidator() BookingValidator {
	return &bookingValidator{}
}

func (v *bookingValidator) ValidateBooking(input *models.BookingInput) error {
	if input.BookingDate.IsZero() {
		return apperrors.Validation("please add a booking date")
	}
	return nil
}
