package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database is the subset of MongoDB operations the application depends on.
type Database interface {
	Collection(name string) *mongo.Collection
	CreateIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// MongoDatabase implements Database on top of a *mongo.Database.
type MongoDatabase struct {
	db *mongo.Database
}

// NewMongoDatabase wraps db.
func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDatabase) CreateIndexes(ctx context.Context) error {
	return CreateIndexes(ctx, m.db)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, readpref.Primary())
}
