package db

import (
	"errors"
	"strconv"
)

// Sentinel errors for index operations.
var (
	ErrIndexExists = errors.New("db: index already exists")
	ErrRejected    = errors.New("db: request rejected")
)

// Op constants name the HTTP operation for error context.
const (
	OpCreateIndex = "PUT index"
)

// ResourceAlreadyExists is the OpenSearch error type returned when the index exists.
const ResourceAlreadyExists = "resource_already_exists_exception"

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// StatusError reports a response whose status is not a success.
type StatusError struct {
	Op         string
	StatusCode int
	Type       string // error.type from the response body, if any
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := e.Op + ": status " + strconv.Itoa(e.StatusCode)
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	return msg
}

// Unwrap yields ErrIndexExists for an existing index and ErrRejected otherwise.
func (e *StatusError) Unwrap() error {
	if e.Type == ResourceAlreadyExists {
		return ErrIndexExists
	}
	return ErrRejected
}
