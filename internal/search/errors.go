package search

import (
	"errors"
	"fmt"
)

// ErrorKind classifies search capability failures so callers can decide
// which are worth another strategy and which abort the whole lookup.
type ErrorKind string

// Search failure kinds.
const (
	KindAuthFailure ErrorKind = "auth_failure"
	KindRateLimited ErrorKind = "rate_limited"
	KindTimeout     ErrorKind = "timeout"
	KindNoResults   ErrorKind = "no_results"
	KindTransport   ErrorKind = "transport"
)

// Error is the typed error returned by the search adapter and client.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("search %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from an error chain, defaulting to transport.
func KindOf(err error) ErrorKind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindTransport
}

// aborts reports whether a failure kind should end the strategy loop
// immediately. Auth and quota problems are not fixed by a different query.
func aborts(kind ErrorKind) bool {
	return kind == KindAuthFailure || kind == KindRateLimited
}
