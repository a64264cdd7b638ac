package errs

import (
	"fmt"
	"strings"
)

// InvalidTransitionError reports a status change that the transition table does not permit
// for the acting role. Allowed lists every status reachable in one step, for diagnostics.
type InvalidTransitionError struct {
	Subject string
	From    string
	To      string
	Role    string
	Allowed []string
}

// NewInvalidTransitionError creates the error for a refused move of subject.
func NewInvalidTransitionError(subject, from, to, role string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Subject: subject,
		From:    from,
		To:      to,
		Role:    role,
		Allowed: allowed,
	}
}

// Error implements error.
func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: %s cannot change %s from %s to %s (allowed: %s)",
		ErrInvalidTransition, e.Role, e.Subject, e.From, e.To, allowed)
}

// Unwrap returns ErrInvalidTransition.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports an operation that would duplicate an existing active entity.
type ConflictError struct {
	ParamName string
	Reason    string
}

// NewConflictError creates a conflict on paramName with a human-readable reason.
func NewConflictError(paramName, reason string) *ConflictError {
	return &ConflictError{ParamName: paramName, Reason: reason}
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConflict, e.ParamName, e.Reason)
}

// Unwrap returns ErrConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
