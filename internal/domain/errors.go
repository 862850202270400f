package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentials signals that signing credentials could not be resolved.
	ErrCredentials = errors.New("credential resolution failed")
	// ErrTransport signals a network, TLS or timeout failure.
	ErrTransport = errors.New("transport failure")
	// ErrRejected signals a non-success HTTP status from the service.
	ErrRejected = errors.New("request rejected")
	// ErrAlreadyExists signals that the index is already present.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidDefinition signals an index definition that failed local validation.
	ErrInvalidDefinition = errors.New("invalid index definition")
)

// RejectedError carries the status and body of a rejected request.
// Reason is ErrAlreadyExists or ErrRejected.
type RejectedError struct {
	StatusCode int
	Body       string
	Reason     error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Reason.Error(), e.StatusCode)
}

func (e *RejectedError) Unwrap() error { return e.Reason }

// NewRejected creates a rejection error. alreadyExists selects ErrAlreadyExists as the reason.
func NewRejected(statusCode int, body string, alreadyExists bool) error {
	reason := ErrRejected
	if alreadyExists {
		reason = ErrAlreadyExists
	}
	return &RejectedError{StatusCode: statusCode, Body: body, Reason: reason}
}
