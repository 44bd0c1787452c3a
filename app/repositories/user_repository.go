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

const usersCollection = "users"

// UserRepository handles store operations for User documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index backing the app-level
// uniqueness check.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users: ensure indexes: %w", err)
	}
	return nil
}

// FindByEmail looks a user up by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveStoreOp(usersCollection, "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find by email: %w", err)
	}
	return user, nil
}

// FindByID looks a user up by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return models.User{}, err
	}

	defer metrics.ObserveStoreOp(usersCollection, "find", time.Now())

	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find %s: %w", id, err)
	}
	return user, nil
}

// ResolveID confirms the id refers to a stored account, fetching the id
// field only. Satisfies the auth middleware's IdentityResolver.
func (r *UserRepository) ResolveID(ctx context.Context, id string) (string, error) {
	oid, err := parseID(id)
	if err != nil {
		return "", err
	}

	defer metrics.ObserveStoreOp(usersCollection, "find", time.Now())

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("users: resolve %s: %w", id, err)
	}
	return doc.ID.Hex(), nil
}

// Create inserts the user and returns it with its generated id.
// A duplicate email surfaces as ErrEmailTaken via the unique index.
func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	defer metrics.ObserveStoreOp(usersCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: insert: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}
