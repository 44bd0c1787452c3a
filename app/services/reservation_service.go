package services

import (
	"context"

	"autonuoma/app/models"
	"autonuoma/pkg/event"
	"autonuoma/pkg/metrics"
)

// Violation labels, in the order they are reported.
const (
	ViolationCar       = "car"
	ViolationCarTitle  = "car title"
	ViolationStartDate = "rental start date"
	ViolationEndDate   = "rental end date"
	ViolationStatus    = "status"
)

// Reservation lifecycle events.
const (
	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventReservationDeleted = "reservation.deleted"
)

// ValidateReservation returns the ordered list of missing mandatory fields
// of a candidate payload: car reference, car title, rental start date,
// rental end date. Pure input validation; the store is never touched.
func ValidateReservation(r models.Reservation) []string {
	var violations []string
	if r.CarID == "" {
		violations = append(violations, ViolationCar)
	}
	if r.CarTitle == "" {
		violations = append(violations, ViolationCarTitle)
	}
	if r.DateRented.IsZero() {
		violations = append(violations, ViolationStartDate)
	}
	if r.DateReturned.IsZero() {
		violations = append(violations, ViolationEndDate)
	}
	return violations
}

// ValidateReservationUpdate validates an update payload: the create-time
// rules plus membership of the status enum. A missing status counts as its
// own violation — updates always carry an explicit status.
func ValidateReservationUpdate(r models.Reservation) []string {
	violations := ValidateReservation(r)
	if !models.ValidStatus(r.Status) {
		violations = append(violations, ViolationStatus)
	}
	return violations
}

// ReservationScope is the visibility filter applied when listing
// reservations. A zero OwnerID means every reservation is visible.
type ReservationScope struct {
	OwnerID string
}

// ScopeFor is the access policy: admins see everything, everyone else sees
// only their own reservations. Pure decision over (role, caller id); query
// execution is the repository's job.
func ScopeFor(callerID string, isAdmin bool) ReservationScope {
	if isAdmin {
		return ReservationScope{}
	}
	return ReservationScope{OwnerID: callerID}
}

// ReservationStore is the slice of the record store the reservation
// workflows need.
type ReservationStore interface {
	List(ctx context.Context, ownerID string) ([]models.Reservation, error)
	FindByID(ctx context.Context, id string) (models.Reservation, error)
	Create(ctx context.Context, r models.Reservation) (models.Reservation, error)
	Update(ctx context.Context, id string, r models.Reservation) (models.Reservation, error)
	Delete(ctx context.Context, id string) (models.Reservation, error)
}

// UserLookup resolves caller identities for role checks and snapshots.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (models.User, error)
}

// ReservationService implements the reservation lifecycle.
type ReservationService struct {
	reservations ReservationStore
	users        UserLookup
}

func NewReservationService(reservations ReservationStore, users UserLookup) *ReservationService {
	return &ReservationService{reservations: reservations, users: users}
}

// List returns the reservations visible to the caller, ordered by rental
// start date descending.
func (s *ReservationService) List(ctx context.Context, callerID string) ([]models.Reservation, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	scope := ScopeFor(callerID, caller.IsAdmin)
	return s.reservations.List(ctx, scope.OwnerID)
}

// Get returns a single reservation by id.
func (s *ReservationService) Get(ctx context.Context, id string) (models.Reservation, error) {
	return s.reservations.FindByID(ctx, id)
}

// Create validates the payload and inserts a new reservation owned by the
// caller. Status is always pending — a client-supplied status is ignored —
// and the renter's email is snapshotted from the account at creation time.
func (s *ReservationService) Create(ctx context.Context, callerID string, input models.Reservation) (models.Reservation, error) {
	if violations := ValidateReservation(input); len(violations) > 0 {
		return models.Reservation{}, &ValidationError{Violations: violations}
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return models.Reservation{}, err
	}

	input.UserID = callerID
	input.Email = caller.Email
	input.Status = models.StatusPending

	created, err := s.reservations.Create(ctx, input)
	if err != nil {
		return models.Reservation{}, err
	}

	metrics.ReservationsCreated.Inc()
	event.FireAsync(EventReservationCreated, created)
	return created, nil
}

// Update re-validates every mandatory field plus the status enum, then
// replaces the reservation's mutable fields. Any enumerated status may be
// set from any other — transitions are caller-driven.
func (s *ReservationService) Update(ctx context.Context, id string, input models.Reservation) (models.Reservation, error) {
	if violations := ValidateReservationUpdate(input); len(violations) > 0 {
		return models.Reservation{}, &ValidationError{Violations: violations}
	}

	updated, err := s.reservations.Update(ctx, id, input)
	if err != nil {
		return models.Reservation{}, err
	}

	metrics.ReservationStatusSet.WithLabelValues(updated.Status).Inc()
	event.FireAsync(EventReservationUpdated, updated)
	return updated, nil
}

// Delete removes a reservation and returns the deleted document.
func (s *ReservationService) Delete(ctx context.Context, id string) (models.Reservation, error) {
	deleted, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return models.Reservation{}, err
	}

	event.FireAsync(EventReservationDeleted, deleted)
	return deleted, nil
}
