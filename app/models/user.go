package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account. Signup always creates a non-admin user; the admin flag
// is only ever set directly in the store.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}
