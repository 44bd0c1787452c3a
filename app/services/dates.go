package services

import (
	"autonuoma/app/models"
)

// DaysBetween expands a (start, end) pair into the inclusive list of calendar
// days spanned, earliest first, stepping one day at a time. Time-of-day is
// ignored: both endpoints are truncated to midnight UTC before expansion.
//
// When end is before start the result is empty — the comparison against
// degenerate ranges is the caller's job.
func DaysBetween(start, end models.Date) []models.Date {
	var days []models.Date
	for d := start.Day(); !d.After(end.Day()); d = d.AddDate(0, 0, 1) {
		days = append(days, models.Date{Time: d})
	}
	return days
}

// spansDays reports whether the reservation covers at least one night, i.e.
// its return date is strictly after its rental date. Ranges that fail this
// are degenerate bookings and contribute no taken dates.
func spansDays(r models.Reservation) bool {
	return r.DateReturned.After(r.DateRented.Time)
}
