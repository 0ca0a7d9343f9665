package types

import (
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// ErrKindClientInput covers malformed bodies, missing sub-fields and
	// unrecognized provider tags. Recoverable by the caller, never retried.
	ErrKindClientInput ErrorKind = "client_input"
	// ErrKindUpstream covers transport failures and non-success statuses
	// from a payment provider.
	ErrKindUpstream ErrorKind = "upstream_provider"
	// ErrKindPersistence covers reference-store faults, including a lookup
	// key that should exist but does not.
	ErrKindPersistence ErrorKind = "persistence"
)

// PaymentError is the only error shape gateways return. Message is safe to
// echo to the caller; Detail carries the internals (offending field,
// upstream status) and is only ever logged.
type PaymentError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Detail     string
}

func (e *PaymentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
}

func ClientError(message string, detail string) *PaymentError {
	return &PaymentError{
		Kind:       ErrKindClientInput,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Detail:     detail,
	}
}

func UpstreamError(message string, detail string) *PaymentError {
	return &PaymentError{
		Kind:       ErrKindUpstream,
		StatusCode: http.StatusBadGateway,
		Message:    message,
		Detail:     detail,
	}
}

// UpstreamErrorWithStatus is for upstream outcomes that are not plain
// gateway failures, e.g. a capture attempted while the payment is not yet
// authorized (409).
func UpstreamErrorWithStatus(statusCode int, message string, detail string) *PaymentError {
	return &PaymentError{
		Kind:       ErrKindUpstream,
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	}
}

func PersistenceError(message string, detail string) *PaymentError {
	return &PaymentError{
		Kind:       ErrKindPersistence,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Detail:     detail,
	}
}
