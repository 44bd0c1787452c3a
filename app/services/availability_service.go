package services

import (
	"context"

	"autonuoma/app/models"
	"autonuoma/app/repositories"
	"autonuoma/pkg/collection"
)

// ReservationFinder is the slice of the record store the availability
// computation needs.
type ReservationFinder interface {
	FindByCar(ctx context.Context, carID string) ([]models.Reservation, error)
}

// AvailabilityService derives the taken calendar dates for a car from its
// existing reservations.
type AvailabilityService struct {
	reservations ReservationFinder
}

func NewAvailabilityService(reservations ReservationFinder) *AvailabilityService {
	return &AvailabilityService{reservations: reservations}
}

// UnavailableDates returns every calendar date already booked for the car:
// each reservation whose return date is strictly after its rental date is
// expanded into its inclusive day range, and the ranges are flattened in
// store-return order.
//
// Dates from overlapping reservations appear once per reservation — the
// output is deliberately not deduplicated, matching what clients already
// consume.
//
// The car id is checked against the store's identifier grammar before any
// store access; an invalid id fails with ErrInvalidID.
func (s *AvailabilityService) UnavailableDates(ctx context.Context, carID string) ([]models.Date, error) {
	if !repositories.ValidID(carID) {
		return nil, repositories.ErrInvalidID
	}

	all, err := s.reservations.FindByCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	booked := collection.Filter(all, spansDays)
	ranges := collection.Map(booked, func(r models.Reservation) []models.Date {
		return DaysBetween(r.DateRented, r.DateReturned)
	})

	return collection.Flatten(ranges), nil
}
