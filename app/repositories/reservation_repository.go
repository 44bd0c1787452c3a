package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"autonuoma/app/models"
	"autonuoma/pkg/database"
	"autonuoma/pkg/metrics"
)

const reservationsCollection = "reservations"

// ReservationRepository handles store operations for Reservation documents.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{col: database.Collection(reservationsCollection)}
}

// EnsureIndexes creates the helper indexes used by the list and
// availability queries.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "car_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "dateRented", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("reservations: ensure indexes: %w", err)
	}
	return nil
}

// List returns reservations sorted by rental start date descending.
// An empty ownerID lists every reservation; otherwise only the owner's.
func (r *ReservationRepository) List(ctx context.Context, ownerID string) ([]models.Reservation, error) {
	defer metrics.ObserveStoreOp(reservationsCollection, "find", time.Now())

	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateRented", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("reservations: find: %w", err)
	}

	var reservations []models.Reservation
	if err := cur.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("reservations: decode: %w", err)
	}
	return reservations, nil
}

// FindByCar returns every reservation referencing the car, in store-return
// order. The car id is matched as the loose string reference it is.
func (r *ReservationRepository) FindByCar(ctx context.Context, carID string) ([]models.Reservation, error) {
	defer metrics.ObserveStoreOp(reservationsCollection, "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"car_id": carID})
	if err != nil {
		return nil, fmt.Errorf("reservations: find by car %s: %w", carID, err)
	}

	var reservations []models.Reservation
	if err := cur.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("reservations: decode: %w", err)
	}
	return reservations, nil
}

// FindByID looks a reservation up by its identifier.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (models.Reservation, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Reservation{}, err
	}

	defer metrics.ObserveStoreOp(reservationsCollection, "find", time.Now())

	var res models.Reservation
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Reservation{}, ErrNotFound
	}
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservations: find %s: %w", id, err)
	}
	return res, nil
}

// Create inserts the reservation and returns it with its generated id.
// A single store call; there are no partial writes.
func (r *ReservationRepository) Create(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	defer metrics.ObserveStoreOp(reservationsCollection, "insert", time.Now())

	ins, err := r.col.InsertOne(ctx, res)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservations: insert: %w", err)
	}
	res.ID = ins.InsertedID.(primitive.ObjectID)
	return res, nil
}

// Update replaces the mutable fields and returns the updated document.
func (r *ReservationRepository) Update(ctx context.Context, id string, res models.Reservation) (models.Reservation, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Reservation{}, err
	}

	defer metrics.ObserveStoreOp(reservationsCollection, "update", time.Now())

	update := bson.M{"$set": bson.M{
		"car_id":       res.CarID,
		"carTitle":     res.CarTitle,
		"dateRented":   res.DateRented,
		"dateReturned": res.DateReturned,
		"status":       res.Status,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Reservation
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Reservation{}, ErrNotFound
	}
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservations: update %s: %w", id, err)
	}
	return updated, nil
}

// Delete removes a reservation and returns the deleted document.
func (r *ReservationRepository) Delete(ctx context.Context, id string) (models.Reservation, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.Reservation{}, err
	}

	defer metrics.ObserveStoreOp(reservationsCollection, "delete", time.Now())

	var deleted models.Reservation
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Reservation{}, ErrNotFound
	}
	if err != nil {
		return models.Reservation{}, fmt.Errorf("reservations: delete %s: %w", id, err)
	}
	return deleted, nil
}
