package database

import (
	"context"
	"fmt"
	"time"

	"interview-booking-api/pkg/logger"
	"interview-booking-api/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexes returns the index set per collection.
func indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CompaniesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		BookingsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{Keys: bson.D{{Key: "company", Value: 1}}},
			{Keys: bson.D{{Key: "bookingDate", Value: 1}}},
		},
	}
}

// CreateIndexes creates the unique and lookup indexes for all collections.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for collection, models := range indexes() {
		start := time.Now()
		_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		metrics.MongoOperationDuration.WithLabelValues("create_indexes", collection).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("create_indexes", collection).Inc()
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
