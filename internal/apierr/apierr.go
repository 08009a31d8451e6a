package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the four failure kinds the API distinguishes. Services wrap
// these with %w so handlers can map any error chain to a status code.
var (
	// ErrNotFound marks a missing company, product, catalog entry or an
	// aggregation with no qualifying rows.
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks malformed or incomplete caller input.
	ErrInvalid = errors.New("invalid argument")
	// ErrUnauthorized marks a missing or unusable credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks a caller whose role does not permit the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream marks a failed classifier or object-store call.
	ErrUpstream = errors.New("upstream failure")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// StatusFor maps an error chain to an HTTP status. Anything unrecognized is
// an internal error.
func StatusFor(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeFor returns a short machine-readable code for the error chain.
func CodeFor(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	switch StatusFor(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadGateway:
		return "upstream_failure"
	default:
		return "internal"
	}
}
