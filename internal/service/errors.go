// Package service wires the scheduling, admission and enrichment logic to
// persistence and deck/card ownership rules.
package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrNotDeckOwner indicates the requesting user does not own the deck.
	ErrNotDeckOwner = errors.New("unauthorized access: deck not owned by user")

	// ErrCardNotInDeck indicates a card does not belong to the deck implied
	// by the request. Surfaced as a conflict, never silently corrected.
	ErrCardNotInDeck = errors.New("card does not belong to deck")

	// ErrOwnDeckImport indicates a user tried to import a deck they
	// already own.
	ErrOwnDeckImport = errors.New("cannot import own deck")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt. Deliberately
	// the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceError wraps errors from the services with the failing operation.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_card", "review_card")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
