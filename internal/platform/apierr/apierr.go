package apierr

import (
	"errors"
	"fmt"
	"net/http"
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

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

func Validation(code string, err error) *Error {
	return New(http.StatusUnprocessableEntity, code, err)
}

func Forbidden(code string, err error) *Error {
	return New(http.StatusForbidden, code, err)
}

func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, err)
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, err)
}

// HTTPStatusCoder is satisfied by upstream client errors that know the
// collaborator's response status.
type HTTPStatusCoder interface {
	HTTPStatusCode() int
}

// ExternalUnavailable wraps a failed LLM/email call. The upstream status is
// folded into the message when the error exposes it.
func ExternalUnavailable(code string, service string, err error) *Error {
	var sc HTTPStatusCoder
	if err != nil && errors.As(err, &sc) && sc.HTTPStatusCode() != 0 {
		return New(http.StatusBadGateway, code, fmt.Errorf("%s unavailable (upstream status %d): %w", service, sc.HTTPStatusCode(), err))
	}
	return New(http.StatusBadGateway, code, fmt.Errorf("%s unavailable: %w", service, err))
}

// As extracts an *Error from err, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
