package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autonuoma/app/models"
	"autonuoma/pkg/database"
	"autonuoma/pkg/metrics"
)

const carsCollection = "cars"

// CarRepository handles store operations for Car documents.
type CarRepository struct {
	col *mongo.Collection
}

func NewCarRepository() *CarRepository {
	return &CarRepository{col: database.Collection(carsCollection)}
}

// All returns every car listing.
func (r *CarRepository) All(ctx context.Context) ([]models.Car, error) {
	defer metrics.ObserveStoreOp(carsCollection, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cars: find: %w", err)
	}

	var cars []models.Car
	if err := cur.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("cars: decode: %w", err)
	}
	return cars, nil
}

// FindByID looks a car up by its identifier.
func (r *CarRepository) FindByID(ctx context.Context, id string) (models.Car, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Car{}, err
	}

	defer metrics.ObserveStoreOp(carsCollection, "find", time.Now())

	var car models.Car
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&car)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Car{}, ErrNotFound
	}
	if err != nil {
		return models.Car{}, fmt.Errorf("cars: find %s: %w", id, err)
	}
	return car, nil
}

// Create inserts the car and returns it with its generated identifier.
func (r *CarRepository) Create(ctx context.Context, car models.Car) (models.Car, error) {
	defer metrics.ObserveStoreOp(carsCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, car)
	if err != nil {
		return models.Car{}, fmt.Errorf("cars: insert: %w", err)
	}
	car.ID = res.InsertedID.(primitive.ObjectID)
	return car, nil
}

// Update replaces every field of the car and returns the updated document.
func (r *CarRepository) Update(ctx context.Context, id string, car models.Car) (models.Car, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Car{}, err
	}

	defer metrics.ObserveStoreOp(carsCollection, "update", time.Now())

	update := bson.M{"$set": bson.M{
		"imageUrl":     car.ImageURL,
		"model":        car.Model,
		"brand":        car.Brand,
		"price":        car.Price,
		"year":         car.Year,
		"fuelType":     car.FuelType,
		"transmission": car.Transmission,
		"seats":        car.Seats,
		"body":         car.Body,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Car
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Car{}, ErrNotFound
	}
	if err != nil {
		return models.Car{}, fmt.Errorf("cars: update %s: %w", id, err)
	}
	return updated, nil
}

// SetImageURL updates only the image reference, used by the upload endpoint.
func (r *CarRepository) SetImageURL(ctx context.Context, id, url string) (models.Car, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Car{}, err
	}

	defer metrics.ObserveStoreOp(carsCollection, "update", time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Car
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"imageUrl": url}}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Car{}, ErrNotFound
	}
	if err != nil {
		return models.Car{}, fmt.Errorf("cars: set image %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a car and returns the deleted document.
func (r *CarRepository) Delete(ctx context.Context, id string) (models.Car, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Car{}, err
	}

	defer metrics.ObserveStoreOp(carsCollection, "delete", time.Now())

	var deleted models.Car
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Car{}, ErrNotFound
	}
	if err != nil {
		return models.Car{}, fmt.Errorf("cars: delete %s: %w", id, err)
	}
	return deleted, nil
}

// BodyTypes returns the distinct body styles across all listings, sorted.
func (r *CarRepository) BodyTypes(ctx context.Context) ([]string, error) {
	defer metrics.ObserveStoreOp(carsCollection, "aggregate", time.Now())

	raw, err := r.col.Distinct(ctx, "body", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("cars: distinct body: %w", err)
	}

	types := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			types = append(types, s)
		}
	}
	sort.Strings(types)
	return types, nil
}
