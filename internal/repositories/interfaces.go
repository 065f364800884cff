package repositories

import (
	"context"
	"net/url"

	"interview-booking-api/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type CompanyRepository interface {
	Find(ctx context.Context, q *models.CompanyQuery) ([]models.Company, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, id primitive.ObjectID, input *models.CompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookingFilter narrows a booking listing; nil fields match everything.
type BookingFilter struct {
	User    *primitive.ObjectID
	Company *primitive.ObjectID
}

type BookingRepository interface {
	Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, id primitive.ObjectID, input *models.BookingInput) (*models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCompany(ctx context.Context, companyID primitive.ObjectID) (int64, error)
}

// CompanyCache is a read-through cache for companies. Getters return
// (nil, nil) on a miss.
type CompanyCache interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	SetCompany(ctx context.Context, company *models.Company) error
	GetList(ctx context.Context, query url.Values) (*models.CompanyList, error)
	SetList(ctx context.Context, query url.Values, list *models.CompanyList) error
	Invalidate(ctx context.Context, id string) error
}
