// Package response renders the JSON envelope used by every endpoint and maps
// the service error taxonomy onto HTTP statuses:
//
//	validation failure → 400 + the full ordered list of violated field labels
//	missing record / bad id → 404 "does not exist"
//	missing or invalid credential → 401
//	anything else from the store → 500 with a generic message
package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 400 with the ordered list of violated field labels.
func ValidationError(w http.ResponseWriter, violations []string) {
	write(w, http.StatusBadRequest, envelope{
		Status:  http.StatusBadRequest,
		Message: "Please fill in all required fields",
		Errors:  violations,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends the uniform 404 used for both unknown records and
// syntactically invalid identifiers.
func NotFound(w http.ResponseWriter, what string) {
	Error(w, http.StatusNotFound, what+" does not exist")
}

// StorageError sends the opaque 500 used for unexpected store failures.
// The underlying error is never included; callers log it separately.
func StorageError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Server error")
}
