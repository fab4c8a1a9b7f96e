package domain

import (
	"errors"
)

// ErrorKind tags every failure the session engine can surface so callers can
// choose user-facing behavior without re-deriving the cause.
type ErrorKind string

const (
	// KindNotFound covers lookups that found no matching row. "No open
	// session" is a normal steady state for a customer, not a user error.
	KindNotFound ErrorKind = "not_found"
	// KindTokenNotFound means a scanned business token matched no venue.
	KindTokenNotFound ErrorKind = "token_not_found"
	// KindSessionNotFound means a session token matched no validatable row.
	// It deliberately covers both "wrong venue" and "already validated or
	// completed" so the response does not leak which case occurred.
	KindSessionNotFound ErrorKind = "session_not_found"
	// KindUniqueViolation means an insert hit a uniqueness constraint.
	// Token collisions surface here and are retryable by the caller.
	KindUniqueViolation ErrorKind = "unique_violation"
	// KindDuplicateSession means the customer already holds an open session.
	KindDuplicateSession ErrorKind = "duplicate_session"
	// KindInvalidTransition means a disallowed lifecycle state change.
	KindInvalidTransition ErrorKind = "invalid_transition"
	// KindTransient means a store operation failed to reach the backend.
	// Never auto-retried internally; the caller decides.
	KindTransient ErrorKind = "transient"
)

// Error is the tagged failure type carried through the whole call chain.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches domain errors by kind, so sentinel comparisons with errors.Is
// work regardless of message or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound          = &Error{Kind: KindNotFound, Message: "record not found"}
	ErrTokenNotFound     = &Error{Kind: KindTokenNotFound, Message: "business token not found"}
	ErrSessionNotFound   = &Error{Kind: KindSessionNotFound, Message: "no matching parking session"}
	ErrUniqueViolation   = &Error{Kind: KindUniqueViolation, Message: "unique constraint violated"}
	ErrDuplicateSession  = &Error{Kind: KindDuplicateSession, Message: "customer already has an open parking session"}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition, Message: "parking session cannot make that transition"}
)

// TransientError wraps a failed store round-trip with its cause.
func TransientError(cause error) *Error {
	return &Error{Kind: KindTransient, Message: "store operation failed", Cause: cause}
}

// KindOf extracts the error kind, returning KindTransient for anything that
// is not a tagged domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}
