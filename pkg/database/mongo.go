// Package database owns the MongoDB client shared by the repositories and
// the Mongo log sink.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"autonuoma/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Connect opens the client, verifies it with a ping, and selects the
// application database. Call once at boot.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDB())
	return nil
}

// Collection returns a handle on the named collection of the application
// database. Returns nil before Connect, which lets repositories be built
// for route listing without a live connection.
func Collection(name string) *mongo.Collection {
	if DB == nil {
		return nil
	}
	return DB.Collection(name)
}

// Ping verifies the connection, used by the health endpoint.
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("database: not connected")
	}
	return Client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the client. Call at shutdown.
func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = Client.Disconnect(ctx)
}
