package controllers

import (
	"net/http"

	"autonuoma/app/models"
	"autonuoma/app/services"
	"autonuoma/pkg/bind"
	"autonuoma/pkg/middleware"
	"autonuoma/pkg/response"
	"autonuoma/pkg/router"
	"autonuoma/pkg/ws"
)

type ReservationController struct {
	service      *services.ReservationService
	availability *services.AvailabilityService
	users        services.UserLookup
	feed         *ws.Hub
}

func NewReservationController(
	service *services.ReservationService,
	availability *services.AvailabilityService,
	users services.UserLookup,
	feed *ws.Hub,
) *ReservationController {
	return &ReservationController{
		service:      service,
		availability: availability,
		users:        users,
		feed:         feed,
	}
}

// Index returns the reservations visible to the caller: admins get the whole
// book, everyone else only their own. Sorted by rental start date, newest
// first.
func (c *ReservationController) Index(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	reservations, err := c.service.List(r.Context(), callerID)
	if err != nil {
		fail(w, r, "Reservation", err)
		return
	}
	response.Success(w, reservations)
}

// Show returns a single reservation by id.
func (c *ReservationController) Show(w http.ResponseWriter, r *http.Request) {
	reservation, err := c.service.Get(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, r, "Reservation", err)
		return
	}
	response.Success(w, reservation)
}

// UnavailableDates returns every booked calendar day for a car, one entry per
// overlapping reservation day.
func (c *ReservationController) UnavailableDates(w http.ResponseWriter, r *http.Request) {
	dates, err := c.availability.UnavailableDates(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, dates)
}

// Store creates a reservation owned by the caller.
func (c *ReservationController) Store(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var input models.Reservation
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := c.service.Create(r.Context(), callerID, input)
	if err != nil {
		fail(w, r, "Reservation", err)
		return
	}
	response.Created(w, reservation)
}

// Update replaces a reservation's mutable fields, including status.
func (c *ReservationController) Update(w http.ResponseWriter, r *http.Request) {
	var input models.Reservation
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := c.service.Update(r.Context(), router.Param(r, "id"), input)
	if err != nil {
		fail(w, r, "Reservation", err)
		return
	}
	response.Success(w, reservation)
}

// Destroy deletes a reservation and returns the deleted document.
func (c *ReservationController) Destroy(w http.ResponseWriter, r *http.Request) {
	reservation, err := c.service.Delete(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, r, "Reservation", err)
		return
	}
	response.Success(w, reservation)
}

// Feed upgrades the connection to a WebSocket carrying live reservation
// lifecycle events. Admin only.
func (c *ReservationController) Feed(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	caller, err := c.users.FindByID(r.Context(), callerID)
	if err != nil {
		fail(w, r, "User", err)
		return
	}
	if !caller.IsAdmin {
		response.Forbidden(w)
		return
	}

	ws.Upgrade(w, r, c.feed)
}
