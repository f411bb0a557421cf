package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the uniform external failure taxonomy. Adapters surface
// their own terminal kinds; the orchestrator maps them 1:1 onto these.
type ErrorKind string

const (
	KindConfiguration         ErrorKind = "configuration_error"
	KindInputValidation       ErrorKind = "input_validation_error"
	KindUpstreamTimeout       ErrorKind = "upstream_timeout"
	KindUpstreamRateLimited   ErrorKind = "upstream_rate_limited"
	KindUpstreamAuthFailure   ErrorKind = "upstream_auth_failure"
	KindUpstreamTransport     ErrorKind = "upstream_transport"
	KindUpstreamEmptyResponse ErrorKind = "upstream_empty_response"
	KindUpstreamInvalidSchema ErrorKind = "upstream_invalid_schema"
	KindNoUsableResults       ErrorKind = "no_usable_results"
)

// Error is the terminal failure type crossing the orchestrator boundary.
// Message is always safe to show a caller; upstream payloads stay in Cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pipeline %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("pipeline %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps a failure kind onto the response status. Validation
// problems are the caller's fault, exhausted fallbacks are a miss, and
// everything upstream is a server-side failure.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInputValidation:
		return http.StatusBadRequest
	case KindNoUsableResults:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the failure kind from any error returned by the
// orchestrator, defaulting to a transport failure for foreign errors.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindUpstreamTransport
}
