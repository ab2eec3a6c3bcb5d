package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrBanknoteNotFound is returned when a banknote is not found.
	ErrBanknoteNotFound = errors.New("banknote not found")
	// ErrNotOwner is returned when a user modifies a banknote they do not own.
	ErrNotOwner = errors.New("you don't have permission to modify this banknote")
	// ErrGenerationInFlight is returned when the user already has a generation running.
	ErrGenerationInFlight = errors.New("you already have a generation in progress")
	// ErrGenerationCooldown is returned when the cooldown period has not elapsed.
	ErrGenerationCooldown = errors.New("generation cooldown has not elapsed")
	// ErrSerialNotFound is returned when no active serial record matches.
	ErrSerialNotFound = errors.New("serial number not registered")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrBanknoteNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BANKNOTE_NOT_FOUND")
	case ErrNotOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_OWNER")
	case ErrGenerationInFlight:
		return NewHTTPError(http.StatusConflict, err.Error(), "GENERATION_IN_FLIGHT")
	case ErrGenerationCooldown:
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "GENERATION_COOLDOWN")
	case ErrSerialNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SERIAL_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
