package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a note is absent from the caller's collection.
var ErrNotFound = errors.New("note not found")

// ErrUnauthorized is returned when no valid session accompanies a request.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports a missing or invalid input field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failed or misconfigured call to an external
// service. StatusCode is the upstream's HTTP status when one was received,
// zero otherwise.
type UpstreamError struct {
	StatusCode int
	Msg        string
}

func (e *UpstreamError) Error() string { return e.Msg }

// Status maps an error to the HTTP status code handlers must respond with.
func Status(err error) int {
	var ve *ValidationError
	var ue *UpstreamError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ue):
		if ue.StatusCode >= http.StatusBadRequest {
			return ue.StatusCode
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
