package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/beamcollective/portal-api/internal/domain"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// ErrorBody is the error payload: a machine-stable reason plus a human
// message. Conflict responses additionally carry the current status.
type ErrorBody struct {
	Reason        string `json:"reason"`
	Message       string `json:"message"`
	CurrentStatus string `json:"current_status,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(resp)
}

// Error sends an error response with a reason code
func Error(w http.ResponseWriter, status int, reason, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: false,
		Error:   ErrorBody{Reason: reason, Message: message},
	}

	json.NewEncoder(w).Encode(resp)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, domain.ReasonValidation, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, reason, message string) {
	Error(w, http.StatusUnauthorized, reason, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, domain.ReasonForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, domain.ReasonNotFound, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, "internal_error", message)
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, domain.ReasonServiceDown, message)
}

// DomainError maps a service-layer error onto the HTTP contract. Anything
// that is not a recognized domain error is a 500 with a generic message so
// internals never leak to callers.
func DomainError(w http.ResponseWriter, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(Response{
			Success: false,
			Error: ErrorBody{
				Reason:        domain.ReasonConflict,
				Message:       conflict.Error(),
				CurrentStatus: string(conflict.CurrentStatus),
			},
		})
		return
	}

	var derr *domain.Error
	if errors.As(err, &derr) {
		Error(w, statusFor(derr.Reason), derr.Reason, derr.Message)
		return
	}

	InternalError(w, "internal server error")
}

func statusFor(reason string) int {
	switch reason {
	case domain.ReasonValidation:
		return http.StatusBadRequest
	case domain.ReasonMissingToken, domain.ReasonInvalidToken:
		return http.StatusUnauthorized
	case domain.ReasonForbidden:
		return http.StatusForbidden
	case domain.ReasonNotFound:
		return http.StatusNotFound
	case domain.ReasonConflict:
		return http.StatusConflict
	case domain.ReasonExpired:
		return http.StatusGone
	case domain.ReasonUpstream:
		return http.StatusBadGateway
	case domain.ReasonServiceDown:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
