// Package repositories is the MongoDB-backed record store for cars,
// reservations, and users.
//
// Identifier grammar is checked before any store round-trip: a string that is
// not a valid ObjectID fails with ErrInvalidID without touching the database.
// Read paths collapse ErrInvalidID and ErrNotFound into the same user-visible
// "does not exist" response at the controller edge; they stay distinct error
// values internally.
package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrInvalidID marks an identifier that fails the store's ObjectID grammar.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken marks a signup against an already-registered email.
	ErrEmailTaken = errors.New("email already in use")
)

// parseID validates the identifier grammar and converts to an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ValidID reports whether id satisfies the store's identifier grammar.
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
