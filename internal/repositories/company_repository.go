package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/internal/models"
	"interview-booking-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type companyRepository struct {
	collection *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) CompanyRepository {
	return &companyRepository{
		collection: db.Collection(database.CompaniesCollection),
	}
}

func (r *companyRepository) Find(ctx context.Context, q *models.CompanyQuery) (companies []models.Company, total int64, err error) {
	defer observe("find", database.CompaniesCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}

	total, err = r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	findOptions := options.Find().
		SetSort(sortSpec(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	if len(q.Select) > 0 {
		projection := bson.D{}
		for _, field := range q.Select {
			projection = append(projection, bson.E{Key: field, Value: 1})
		}
		findOptions.SetProjection(projection)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("find companies: %w", err)
	}
	defer cursor.Close(ctx)

	companies = []models.Company{}
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, 0, fmt.Errorf("decode companies: %w", err)
	}
	return companies, total, nil
}

// sortSpec turns ["-createdAt", "name"] into a bson sort document.
func sortSpec(fields []string) bson.D {
	order := bson.D{}
	for _, field := range fields {
		if name, desc := strings.CutPrefix(field, "-"); desc {
			order = append(order, bson.E{Key: name, Value: -1})
		} else {
			order = append(order, bson.E{Key: field, Value: 1})
		}
	}
	return order
}

func (r *companyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (company *models.Company, err error) {
	defer observe("find_one", database.CompaniesCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	company = &models.Company{}
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return company, nil
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) (err error) {
	defer observe("insert", database.CompaniesCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if company.ID.IsZero() {
		company.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, company); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("company name %q: %w", company.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *companyRepository) Update(ctx context.Context, id primitive.ObjectID, input *models.CompanyInput) (company *models.Company, err error) {
	defer observe("update_one", database.CompaniesCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	for field, value := range map[string]string{
		"name":        input.Name,
		"address":     input.Address,
		"website":     input.Website,
		"description": input.Description,
		"tel":         input.Tel,
	} {
		if value != "" {
			set[field] = value
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	company = &models.Company{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(company)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("company name %q: %w", input.Name, apperrors.ErrDuplicate)
	case err != nil:
		return nil, fmt.Errorf("update company: %w", err)
	}
	return company, nil
}

func (r *companyRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	defer observe("delete_one", database.CompaniesCollection, time.Now(), &err)
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
