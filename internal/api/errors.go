package api

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorKind distinguishes transport failures from backend rejections.
type ErrorKind int

const (
	// KindTransport covers network failures and undecodable success bodies.
	// It never carries a status code.
	KindTransport ErrorKind = iota
	// KindAPI is a non-2xx response from the backend.
	KindAPI
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Error is returned by every backend call.
type Error struct {
	Kind ErrorKind
	// Status is the HTTP status code for KindAPI errors and zero otherwise.
	Status int
	// Message is the response body text, or a synthesized description.
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether the backend rejected the session.
func (e *Error) IsUnauthorized() bool {
	if e.Kind != KindAPI {
		return false
	}
	return e.Status == http.StatusUnauthorized ||
		strings.Contains(e.Message, "unauthorized") ||
		strings.Contains(e.Message, "Unauthorized")
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a backend authentication failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.IsUnauthorized()
}

// Message returns the backend's response text for err, or fallback when err
// is not a backend rejection or carries no text.
func Message(err error, fallback string) string {
	apiErr, ok := AsError(err)
	if !ok || apiErr.Kind != KindAPI {
		return fallback
	}
	if msg := strings.TrimSpace(apiErr.Message); msg != "" {
		return msg
	}
	return fallback
}
