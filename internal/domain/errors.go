package domain

// Reason codes carried on every error response. These are part of the API
// contract and must stay stable.
const (
	ReasonMissingToken    = "missing_token"
	ReasonServiceDown     = "service_unavailable"
	ReasonInvalidToken    = "invalid_token"
	ReasonForbidden       = "insufficient_permissions"
	ReasonValidation      = "validation_error"
	ReasonNotFound        = "not_found"
	ReasonConflict        = "already_responded"
	ReasonExpired         = "expired"
	ReasonUpstream        = "upstream_error"
)

// Error is a domain error with a machine-stable reason and a human message.
type Error struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Is matches errors by reason so wrapped errors compare against sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

var (
	ErrMissingToken = &Error{Reason: ReasonMissingToken, Message: "missing or malformed bearer token"}
	ErrServiceDown  = &Error{Reason: ReasonServiceDown, Message: "a required backing service is unavailable"}
	ErrInvalidToken = &Error{Reason: ReasonInvalidToken, Message: "invalid or expired token"}
	ErrForbidden    = &Error{Reason: ReasonForbidden, Message: "insufficient permissions"}
	ErrNotFound     = &Error{Reason: ReasonNotFound, Message: "record not found"}
	ErrExpired      = &Error{Reason: ReasonExpired, Message: "record is past its validity window"}
	ErrUpstream     = &Error{Reason: ReasonUpstream, Message: "upstream provider call failed"}
)

// NewValidationError builds a validation error with a caller-facing message.
func NewValidationError(msg string) *Error {
	return &Error{Reason: ReasonValidation, Message: msg}
}

// ConflictError reports a state-machine transition attempted from a terminal
// state, exposing the current status for caller visibility.
type ConflictError struct {
	CurrentStatus ProspectStatus
}

func (e *ConflictError) Error() string {
	return "invitation already " + string(e.CurrentStatus)
}

func (e *ConflictError) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Reason == ReasonConflict
	}
	_, ok := target.(*ConflictError)
	return ok
}
