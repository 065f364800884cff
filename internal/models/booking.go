package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxBookingsPerUser caps how many bookings a non-admin may hold.
const MaxBookingsPerUser = 3

type Booking struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	BookingDate time.Time          `json:"bookingDate" bson:"bookingDate"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Company     primitive.ObjectID `json:"company" bson:"company"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// BookingInput is the payload for creating or updating a booking.
type BookingInput struct {
	BookingDate time.Time `json:"bookingDate" form:"bookingDate" example:"2024-05-10T09:00:00Z"`
	Company     string    `json:"company,omitempty" form:"company" example:"65f1c2e4a1b2c3d4e5f60718"`
}

// BookingView is a booking with its company summary expanded.
type BookingView struct {
	Booking
	CompanyInfo *CompanySummary `json:"companyInfo,omitempty"`
}

type CompanySummary struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Tel     string `json:"tel"`
}
