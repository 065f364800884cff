package services

import (
	"fmt"

	apperrors "interview-booking-api/internal/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("id %q: %w", id, apperrors.ErrInvalidID)
	}
	return oid, nil
}
