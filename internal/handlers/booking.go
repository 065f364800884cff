package handlers

import (
	"fmt"
	"net/http"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/middleware"
	"interview-booking-api/internal/models"
	"interview-booking-api/internal/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingListResponse wraps a booking listing
type BookingListResponse struct {
	Success bool                 `json:"success" example:"true"`
	Count   int                  `json:"count" example:"1"`
	Data    []models.BookingView `json:"data"`
}

// BookingResponse wraps a single booking
type BookingResponse struct {
	Success bool               `json:"success" example:"true"`
	Data    models.BookingView `json:"data"`
}

// GetBookings godoc
// @Summary List bookings
// @Description Admins see every booking; users see their own
// @Tags Bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BookingListResponse
// @Failure 401 {object} ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) GetBookings(c *gin.Context) {
	h.list(c, "")
}

// GetCompanyBookings godoc
// @Summary List bookings of a company
// @Description Admins see every booking of the company; users see their own
// @Tags Bookings
// @Produce json
// @Param id path string true "Company ID"
// @Security BearerAuth
// @Success 200 {object} BookingListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /companies/{id}/bookings [get]
func (h *BookingHandler) GetCompanyBookings(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *BookingHandler) list(c *gin.Context, companyID string) {
	bookings, err := h.bookingService.List(c.Request.Context(), middleware.CurrentUser(c), companyID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, BookingListResponse{Success: true, Count: len(bookings), Data: bookings})
}

// GetBooking godoc
// @Summary Get booking by ID
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Security BearerAuth
// @Success 200 {object} BookingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, BookingResponse{Success: true, Data: *booking})
}

// AddBooking godoc
// @Summary Create a booking
// @Description Users may hold at most 3 bookings. The company is taken from the payload.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking body models.BookingInput true "Booking data"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) AddBooking(c *gin.Context) {
	h.add(c, "")
}

// AddCompanyBooking godoc
// @Summary Book a company
// @Description Users may hold at most 3 bookings
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param booking body models.BookingInput true "Booking data"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /companies/{id}/bookings [post]
func (h *BookingHandler) AddCompanyBooking(c *gin.Context) {
	h.add(c, c.Param("id"))
}

func (h *BookingHandler) add(c *gin.Context, companyID string) {
	var input models.BookingInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(fmt.Errorf("bind booking: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), middleware.CurrentUser(c), companyID, &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": booking})
}

// UpdateBooking godoc
// @Summary Update a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param booking body models.BookingInput true "New booking date"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings/{id} [put]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(fmt.Errorf("bind booking: %v: %w", err, apperrors.ErrMalformedBody))
		return
	}

	booking, err := h.bookingService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookingService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
