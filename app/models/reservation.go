package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reservation statuses. A reservation is created as pending; updates may set
// any enumerated value — no transition ordering is enforced.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the four enumerated statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a booking of one car for a date range.
//
// CarID is a loose string reference, not an enforced relation: the store
// never guarantees the car still exists (known consistency gap, inherited
// from the data model). CarTitle and Email are snapshots taken at creation
// time and do not follow later changes to the car or user.
type Reservation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CarID        string             `bson:"car_id" json:"car_id"`
	CarTitle     string             `bson:"carTitle" json:"carTitle"`
	DateRented   Date               `bson:"dateRented" json:"dateRented"`
	DateReturned Date               `bson:"dateReturned" json:"dateReturned"`
	UserID       string             `bson:"user_id" json:"user_id"`
	Email        string             `bson:"email" json:"email"`
	Status       string             `bson:"status" json:"status"`
}
