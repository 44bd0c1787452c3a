// Package services holds the domain logic: date expansion, availability
// aggregation, reservation validation and access policy, and the car and
// account workflows. Store access goes through narrow interfaces so every
// rule here is testable without a live database.
package services

import "strings"

// ValidationError carries the ordered list of violated field labels for a
// rejected payload. An empty list is never returned as an error.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, ", ")
}
