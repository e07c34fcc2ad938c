package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors. Each one is a failure kind the HTTP layer maps to a status.
var (
	ErrValidation        = errors.New("invalid request")
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrNotFound          = errors.New("the requested resource was not found")
	ErrConfig            = errors.New("generation backend not configured")
	ErrUpstreamTimeout   = errors.New("generation backend timed out")
	ErrUpstreamMalformed = errors.New("generation backend returned malformed output")
	ErrUpstream          = errors.New("generation backend request failed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded: too many tokens used")
	ErrInternalServer    = errors.New("an internal error occurred")
)

// Detail values used with ErrNotFound and ErrUpstreamMalformed.
const (
	EntityPerson   = "person"
	EntityOccasion = "occasion"

	MalformedEmpty  = "empty response"
	MalformedSyntax = "not valid structured data"
	MalformedSchema = "schema violation"
)

// Error carries a failure kind, a short detail (field or entity name) and the cause.
type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewValidationError(field, problem string) *Error {
	return &Error{Kind: ErrValidation, Detail: field + " " + problem}
}

func NewNotFoundError(entityName string) *Error {
	return &Error{Kind: ErrNotFound, Detail: entityName}
}

func NewMalformedError(reason string, cause error) *Error {
	return &Error{Kind: ErrUpstreamMalformed, Detail: reason, Cause: cause}
}

func NewUpstreamError(cause error) *Error {
	return &Error{Kind: ErrUpstream, Cause: cause}
}

// DetailOf returns the Detail of the first *Error in err's chain.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
