// Package apperr defines the error kinds repositories report and how the HTTP
// layer renders them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// KindNotFound means no record matched a keyed lookup.
	KindNotFound Kind = iota + 1
	// KindStoreFailure means the store call failed for a reason not caused by the caller.
	KindStoreFailure
	// KindInvalidInput means the request payload could not be accepted.
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindStoreFailure:
		return "StoreFailure"
	case KindInvalidInput:
		return "InvalidInput"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StatusClass is the transport-independent outcome a kind maps to.
type StatusClass int

const (
	ClassNotFound StatusClass = iota + 1
	ClassServerError
	ClassClientError
)

// Error is a classified failure. Message is safe to show callers; Err is kept
// for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotFoundCause builds a KindNotFound error that remembers the store error it replaced.
func NotFoundCause(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: err}
}

// StoreFailure wraps a store error; its text becomes the message.
func StoreFailure(err error) *Error {
	msg := "store failure"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindStoreFailure, Message: msg, Err: err}
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err. Errors outside the taxonomy count as store failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusClassOf maps a kind onto its status class.
func StatusClassOf(kind Kind) StatusClass {
	switch kind {
	case KindNotFound:
		return ClassNotFound
	case KindInvalidInput:
		return ClassClientError
	default:
		return ClassServerError
	}
}

// HTTPStatus returns the response code for err.
func HTTPStatus(err error) int {
	switch StatusClassOf(KindOf(err)) {
	case ClassNotFound:
		return http.StatusNotFound
	case ClassClientError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
