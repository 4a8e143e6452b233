package storefront

import "fmt"

// Kind classifies every failure the storefront core can surface. Each
// kind maps to exactly one user-facing treatment: AuthRequired prompts
// for sign-in, Validation renders inline, Network becomes a transient
// notification, and EmptyResult triggers the catalog fallback.
type Kind string

const (
	KindAuthRequired Kind = "auth_required"
	KindValidation   Kind = "validation_failed"
	KindNetwork      Kind = "network_failure"
	KindEmptyResult  Kind = "empty_result"
)

// Error is the storefront core's failure type.
type Error struct {
	kind    Kind
	message string
	cause   error

	// status is the collaborator HTTP status when the error came off
	// the wire, zero otherwise.
	status int
}

func newError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func wrapError(kind Kind, cause error, message string) *Error {
	if cause == nil {
		return newError(kind, message)
	}
	return &Error{kind: kind, message: message, cause: cause}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindNetwork
	}
	return e.kind
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// KindOf extracts the failure kind from err. Untyped errors read as
// network failures, the catch-all treatment.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if typed, ok := err.(*Error); ok {
		return typed.Kind()
	}
	return KindNetwork
}

func IsAuthRequired(err error) bool { return KindOf(err) == KindAuthRequired }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNetwork(err error) bool      { return KindOf(err) == KindNetwork }
func IsEmptyResult(err error) bool  { return KindOf(err) == KindEmptyResult }
