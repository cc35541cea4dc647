// Package httperr classifies failures so that gin handlers and CLI mains can
// map them to HTTP statuses and process exit codes without inspecting
// message strings. Pipeline and store code returns plain errors wrapped with
// a Kind; only the outermost adapters look at the kind.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration covers pre-flight invariant violations: slug
	// collisions, duplicate storage paths, missing files or env vars.
	KindConfiguration
	KindValidation
	KindNotFound
	KindPersistence
	KindPermission
	KindAuthentication
	// KindPartial marks a batch run that finished but had per-item
	// failures; artifacts are written before this is raised.
	KindPartial
)

// Error carries a kind alongside the message. The message is what end users
// see, so it stays human-readable and free of internals.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a kinded error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Status maps an error to the HTTP status the API surfaces for it.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindNotFound:
		// The checkout contract reports missing products as a 400 with
		// the offending identifier in the message.
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindConfiguration, KindPersistence, KindPartial, KindUnknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
