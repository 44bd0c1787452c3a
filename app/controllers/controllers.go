// Package controllers holds the HTTP handlers. Controllers stay thin:
// decode the request, call the service, translate the outcome to a response.
package controllers

import (
	"errors"
	"net/http"

	"autonuoma/app/repositories"
	"autonuoma/app/services"
	"autonuoma/pkg/logger"
	"autonuoma/pkg/response"
)

// fail maps a service or repository error to the wire. Missing records and
// malformed identifiers both read as "<what> does not exist"; anything
// unexpected is logged with the request context and reported as a bare 500.
func fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Violations)
	case errors.Is(err, repositories.ErrInvalidID), errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w, what)
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.StorageError(w)
	}
}
