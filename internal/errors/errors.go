package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrSweetNotFound is returned when no sweet matches a well-formed id.
	ErrSweetNotFound = errors.New("Sweet not found")
	// ErrInvalidSweetID is returned when a sweet id is malformed.
	ErrInvalidSweetID = errors.New("Invalid sweet ID")
	// ErrOutOfStock is returned when a purchase hits zero quantity.
	ErrOutOfStock = errors.New("Sweet is out of stock")
	// ErrInvalidRestockQuantity is returned when a restock quantity is missing or not positive.
	ErrInvalidRestockQuantity = errors.New("Valid quantity is required")
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("Email already registered")
	// ErrInvalidCredentials is returned on any login failure, without
	// revealing which field was wrong.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrInvalidToken is returned when a session token is missing, malformed,
	// expired or badly signed.
	ErrInvalidToken = errors.New("Invalid or expired token")
)

// ValidationError carries every violated field message, not just the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// NewValidation creates a ValidationError from one or more messages.
func NewValidation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// collapses to a generic 500 so store internals never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Error())
	}

	switch {
	case errors.Is(err, ErrSweetNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidSweetID),
		errors.Is(err, ErrOutOfStock),
		errors.Is(err, ErrInvalidRestockQuantity),
		errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Something went wrong!")
	}
}
