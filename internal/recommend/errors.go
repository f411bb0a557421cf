package recommend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recommendation failures. NoResults means zero
// locations were accepted after every round; partial shortfalls are
// backfilled, not errored.
type ErrorKind string

// Recommendation failure kinds.
const (
	KindEmptyResponse ErrorKind = "empty_response"
	KindNoResults     ErrorKind = "no_results"
)

// Error is the typed error returned by the recommendation adapter.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommend %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("recommend %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from an error chain, defaulting to no_results.
func KindOf(err error) ErrorKind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return KindNoResults
}
