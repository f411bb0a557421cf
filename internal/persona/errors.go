package persona

import (
	"errors"
	"fmt"
)

// ErrorKind classifies persona generation failures. EmptyResponse and
// InvalidSchema are distinct because callers may retry one and not the other.
type ErrorKind string

// Persona failure kinds.
const (
	KindEmptyResponse ErrorKind = "empty_response"
	KindInvalidSchema ErrorKind = "invalid_schema"
	KindTimeout       ErrorKind = "timeout"
	KindUpstream      ErrorKind = "upstream"
)

// Error is the typed error returned by the persona adapter.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persona %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("persona %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from an error chain, defaulting to upstream.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUpstream
}
