package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call. Callers branch on kind, never on
// raw status codes.
type Kind int

const (
	KindTransient Kind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "transient"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}

	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error with an explicit kind, for transport and decode
// failures that never saw an HTTP status.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// FromStatus maps an HTTP status code to an Error. message is the
// server-provided detail, if any.
func FromStatus(status int, message string) *Error {
	e := &Error{Status: status, Message: message}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusConflict:
		e.Kind = KindConflict
	case status >= 400 && status < 500:
		e.Kind = KindValidation
	default:
		e.Kind = KindTransient
	}

	return e
}

// KindOf reports the kind of err, or KindTransient when err is not an
// API error at all (network failures, cancelled contexts, decode errors).
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return KindTransient
}

func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
