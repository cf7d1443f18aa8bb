package pxp

import (
	"errors"
	"fmt"
)

// Kind classifies the failures of this package.
type Kind int

// Failure kinds. Every failing call returns exactly one of these.
const (
	// EncodingFailure signals that the parameter fragment could not be
	// composed.
	EncodingFailure Kind = iota + 1
	// DecodingFailure signals that a response did not match the expected
	// document structurally or type-wise.
	DecodingFailure
	// TransportFailure is a pass-through of a failure of the transport (network,
	// HTTP status, service error document).
	TransportFailure
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case EncodingFailure:
		return "Encoding failed"
	case DecodingFailure:
		return "Decoding failed"
	case TransportFailure:
		return "Transport failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type of this package.
type Error struct {
	Kind Kind
	// Field names the offending parameter or response field, if known.
	Field string
	Err   error
}

func newError(kind Kind, field string, err error) *Error {
	return &Error{Kind: kind, Field: field, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err (or an error wrapped by err) is an *Error of the
// specified kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ServiceError is reported by the remote service with an RT_ERROR document
// instead of a response (e.g. invalid credentials). It is returned as cause of
// a TransportFailure.
type ServiceError struct {
	Message string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("Service error: %s", e.Message)
}
