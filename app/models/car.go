package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Car is a vehicle listing. Every field is mandatory on create and update.
type Car struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	Model        string             `bson:"model" json:"model"`
	Brand        string             `bson:"brand" json:"brand"`
	Price        float64            `bson:"price" json:"price"`
	Year         int                `bson:"year" json:"year"`
	FuelType     string             `bson:"fuelType" json:"fuelType"`
	Transmission string             `bson:"transmission" json:"transmission"`
	Seats        int                `bson:"seats" json:"seats"`
	Body         string             `bson:"body" json:"body"`
}

// Title is the denormalized label snapshotted onto reservations.
func (c Car) Title() string {
	return c.Brand + " " + c.Model
}
