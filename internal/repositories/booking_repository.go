package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &bookingRepository{
		collection: db.Collection(database.BookingsCollection),
	}
}

func (r *bookingRepository) Find(ctx context.Context, filter BookingFilter) (bookings []models.Booking, err error) {
	defer observe("find", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := bson.M{}
	if filter.User != nil {
		query["user"] = *filter.User
	}
	if filter.Company != nil {
		query["company"] = *filter.Company
	}

	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings = []models.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (booking *models.Booking, err error) {
	defer observe("find_one", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	booking = &models.Booking{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return booking, nil
}

func (r *bookingRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (n int64, err error) {
	defer observe("count_documents", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err = r.collection.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) (err error) {
	defer observe("insert", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, input *models.BookingInput) (booking *models.Booking, err error) {
	defer observe("update_one", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	booking = &models.Booking{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"bookingDate": input.BookingDate}}, opts).Decode(booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	defer observe("delete_one", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) DeleteByCompany(ctx context.Context, companyID primitive.ObjectID) (n int64, err error) {
	defer observe("delete_many", database.BookingsCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"company": companyID})
	if err != nil {
		return 0, fmt.Errorf("delete company bookings: %w", err)
	}
	return result.DeletedCount, nil
}
