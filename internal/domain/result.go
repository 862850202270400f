package domain

import "errors"

// Outcome classifies how an index creation attempt ended.
type Outcome string

const (
	// OutcomeCreated means the service answered 200 or 201.
	OutcomeCreated Outcome = "created"
	// OutcomeExists means the index was already there and that is accepted.
	OutcomeExists Outcome = "exists"
	// OutcomeCredentialFailure means no request was sent.
	OutcomeCredentialFailure Outcome = "credential_failure"
	// OutcomeInvalidDefinition means the definition failed local validation.
	OutcomeInvalidDefinition Outcome = "invalid_definition"
	// OutcomeTransportFailure means the request did not complete.
	OutcomeTransportFailure Outcome = "transport_failure"
	// OutcomeRejected means the service answered with another status.
	OutcomeRejected Outcome = "rejected"
)

// Result is the outcome of a single index creation attempt.
type Result struct {
	Index      string
	Outcome    Outcome
	StatusCode int    // 0 when no response was received
	Body       string // raw response body
	Err        error  // nil on success
}

// Success reports whether the index is usable after this attempt.
func (r Result) Success() bool {
	return r.Outcome == OutcomeCreated || r.Outcome == OutcomeExists
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	if r.Success() {
		return 0
	}
	return 1
}

// Created builds a success result.
func Created(index string, statusCode int, body string) Result {
	return Result{Index: index, Outcome: OutcomeCreated, StatusCode: statusCode, Body: body}
}

// Failed classifies err into a failure result. When acceptExisting is set, an
// ErrAlreadyExists rejection becomes OutcomeExists.
func Failed(index string, err error, acceptExisting bool) Result {
	r := Result{Index: index, Err: err}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		r.StatusCode = rejected.StatusCode
		r.Body = rejected.Body
	}

	switch {
	case errors.Is(err, ErrCredentials):
		r.Outcome = OutcomeCredentialFailure
	case errors.Is(err, ErrInvalidDefinition):
		r.Outcome = OutcomeInvalidDefinition
	case errors.Is(err, ErrAlreadyExists) && acceptExisting:
		r.Outcome = OutcomeExists
		r.Err = nil
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrRejected):
		r.Outcome = OutcomeRejected
	default:
		r.Outcome = OutcomeTransportFailure
	}
	return r
}

// Acknowledgement is the service answer to a successful index creation.
type Acknowledgement struct {
	StatusCode   int
	Body         string
	Acknowledged bool
}
