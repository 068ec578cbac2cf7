// Package apperr defines the error taxonomy shared by the sync core, the remote
// client and the reference server.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by who can correct it.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "UNAUTHORIZED"
	KindNotFound   Kind = "NOT_FOUND"
	KindRemote     Kind = "REMOTE"
	KindStorage    Kind = "STORAGE"
)

// Error is the concrete error type for every kind in the taxonomy.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause attaches an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// NewValidation reports client-correctable input, such as empty thought text or
// an out-of-range duration.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Status: http.StatusBadRequest}
}

// NewAuth reports a missing or rejected identity.
func NewAuth(message string) *Error {
	if message == "" {
		message = "unauthorized"
	}
	return &Error{Kind: KindAuth, Message: message, Status: http.StatusUnauthorized}
}

// NewNotFound reports an absent target id.
func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource), Status: http.StatusNotFound}
}

// NewRemote reports a transient server or network failure.
func NewRemote(status int, message string) *Error {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: KindRemote, Message: message, Status: status}
}

// NewStorage reports a local persistence failure.
func NewStorage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Status: http.StatusInternalServerError, Cause: cause}
}

// FromStatus maps an HTTP status and server message onto the taxonomy.
func FromStatus(status int, message string) *Error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e := NewValidation("%s", message)
		e.Status = status
		return e
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e := NewAuth(message)
		e.Status = status
		return e
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: message, Status: status}
	default:
		return NewRemote(status, message)
	}
}

// KindOf returns the kind of err, or "" when err is not part of the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsRemote(err error) bool     { return KindOf(err) == KindRemote }
func IsStorage(err error) bool    { return KindOf(err) == KindStorage }
