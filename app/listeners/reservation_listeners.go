// Package listeners subscribes to reservation lifecycle events and carries
// them out of process: confirmation mail for new bookings, and a WebSocket
// broadcast for the live admin feed.
package listeners

import (
	"encoding/json"
	"fmt"

	"autonuoma/app/models"
	"autonuoma/app/services"
	"autonuoma/pkg/event"
	"autonuoma/pkg/logger"
	"autonuoma/pkg/mail"
	"autonuoma/pkg/ws"
)

// Register wires the reservation listeners. Call once at boot, after the
// feed hub is running.
func Register(feed *ws.Hub) {
	event.Listen(services.EventReservationCreated, func(payload interface{}) {
		res, ok := payload.(models.Reservation)
		if !ok {
			return
		}
		broadcast(feed, services.EventReservationCreated, res)
		sendConfirmation(res)
	})

	event.Listen(services.EventReservationUpdated, func(payload interface{}) {
		if res, ok := payload.(models.Reservation); ok {
			broadcast(feed, services.EventReservationUpdated, res)
		}
	})

	event.Listen(services.EventReservationDeleted, func(payload interface{}) {
		if res, ok := payload.(models.Reservation); ok {
			broadcast(feed, services.EventReservationDeleted, res)
		}
	})
}

func broadcast(feed *ws.Hub, name string, res models.Reservation) {
	if feed == nil {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"event":       name,
		"reservation": res,
	})
	if err != nil {
		logger.Error("listeners: marshal feed event", "error", err)
		return
	}
	feed.Broadcast <- msg
}

func sendConfirmation(res models.Reservation) {
	if res.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"<p>Your reservation for <strong>%s</strong> from %s to %s has been received and is pending review.</p>",
		res.CarTitle,
		res.DateRented.Day().Format("2006-01-02"),
		res.DateReturned.Day().Format("2006-01-02"),
	)
	err := mail.To(res.Email).
		Subject("Reservation received: " + res.CarTitle).
		Body(body).
		Send()
	if err != nil {
		// Mail is best effort; an unconfigured mailer is routine in dev.
		logger.Warn("listeners: confirmation mail not sent", "error", err)
	}
}
