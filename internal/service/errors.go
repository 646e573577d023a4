// Package service implements the application's business operations on top
// of the store interfaces and the generation boundary.
package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the service layer.
var (
	// ErrEntryNotFound indicates that the journal entry does not exist.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrTermNotFound indicates that the glossary term does not exist.
	ErrTermNotFound = errors.New("term not found")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotOwner indicates the requester does not own the entity they
	// tried to modify.
	ErrNotOwner = errors.New("requester does not own this entity")

	// ErrNotShared indicates an operation requiring a shared entry was
	// attempted against a private one.
	ErrNotShared = errors.New("entry is not shared")
)

// ServiceError wraps errors from the service layer with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_entry").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
