package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/repositories"
	"interview-booking-api/internal/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService struct {
	bookings  repositories.BookingRepository
	companies repositories.CompanyRepository
	validator validators.BookingValidator
}

func NewBookingService(bookings repositories.BookingRepository, companies repositories.CompanyRepository,
	validator validators.BookingValidator) *BookingService {
	return &BookingService{
		bookings:  bookings,
		companies: companies,
		validator: validator,
	}
}

// List returns the bookings visible to user. Admins see every booking,
// optionally narrowed to companyID; everyone else sees only their own.
func (s *BookingService) List(ctx context.Context, user *models.User, companyID string) ([]models.BookingView, error) {
	var filter repositories.BookingFilter
	if user.IsAdmin() {
		if companyID != "" {
			oid, err := parseID(companyID)
			if err != nil {
				return nil, err
			}
			filter.Company = &oid
		}
	} else {
		filter.User = &user.ID
	}

	bookings, err := s.bookings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := map[primitive.ObjectID]*models.CompanySummary{}
	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		summary, ok := summaries[b.Company]
		if !ok {
			summary, err = s.summary(ctx, b.Company)
			if err != nil {
				return nil, err
			}
			summaries[b.Company] = summary
		}
		views = append(views, models.BookingView{Booking: b, CompanyInfo: summary})
	}
	return views, nil
}

func (s *BookingService) Get(ctx context.Context, user *models.User, id string) (*models.BookingView, error) {
	booking, err := s.owned(ctx, user, id, "view")
	if err != nil {
		return nil, err
	}
	summary, err := s.summary(ctx, booking.Company)
	if err != nil {
		return nil, err
	}
	return &models.BookingView{Booking: *booking, CompanyInfo: summary}, nil
}

// Create books companyID for user. When companyID is empty the company from
// the payload is used. Non-admins are limited to MaxBookingsPerUser bookings.
func (s *BookingService) Create(ctx context.Context, user *models.User, companyID string, input *models.BookingInput) (*models.Booking, error) {
	if companyID == "" {
		companyID = input.Company
	}
	if companyID == "" {
		return nil, apperrors.Validation("please add a company")
	}
	oid, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateBooking(input); err != nil {
		return nil, err
	}

	if _, err := s.companies.FindByID(ctx, oid); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("company", companyID)
		}
		return nil, err
	}

	if !user.IsAdmin() {
		count, err := s.bookings.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if count >= models.MaxBookingsPerUser {
			msg := fmt.Sprintf("The user with ID %s has already made %d bookings", user.ID.Hex(), models.MaxBookingsPerUser)
			return nil, apperrors.NewAppError(msg, msg, apperrors.ErrCodeBookingLimit, http.StatusBadRequest, apperrors.ErrBookingLimit)
		}
	}

	booking := &models.Booking{
		ID:          primitive.NewObjectID(),
		BookingDate: input.BookingDate,
		User:        user.ID,
		Company:     oid,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, user *models.User, id string, input *models.BookingInput) (*models.Booking, error) {
	booking, err := s.owned(ctx, user, id, "update")
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateBooking(input); err != nil {
		return nil, err
	}
	updated, err := s.bookings.Update(ctx, booking.ID, input)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("booking", id)
	}
	return updated, err
}

func (s *BookingService) Delete(ctx context.Context, user *models.User, id string) error {
	booking, err := s.owned(ctx, user, id, "delete")
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("booking", id)
		}
		return err
	}
	return nil
}

// owned loads a booking and checks that user may act on it.
func (s *BookingService) owned(ctx context.Context, user *models.User, id, action string) (*models.Booking, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.FindByID(ctx, oid)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("booking", id)
	}
	if err != nil {
		return nil, err
	}
	if booking.User != user.ID && !user.IsAdmin() {
		return nil, apperrors.Forbidden(fmt.Sprintf("User %s is not authorized to %s this booking", user.ID.Hex(), action))
	}
	return booking, nil
}

// summary returns the public company fields; a company that has since been
// removed yields nil.
func (s *BookingService) summary(ctx context.Context, id primitive.ObjectID) (*models.CompanySummary, error) {
	company, err := s.companies.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.CompanySummary{Name: company.Name, Address: company.Address, Tel: company.Tel}, nil
}
