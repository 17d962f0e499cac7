package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports that no payment exists for the requested ID.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("payment not found with ID: %s", e.ID)
}

// NotModifiableError reports that a payment's current status forbids
// update or cancel.
type NotModifiableError struct {
	ID      uuid.UUID
	Current PaymentStatus
}

func (e *NotModifiableError) Error() string {
	return fmt.Sprintf("payment %s cannot be modified in status: %s", e.ID, e.Current)
}

// InvalidStateError reports that an operation requires a specific
// status the payment does not currently have.
type InvalidStateError struct {
	ID       uuid.UUID
	Current  PaymentStatus
	Required PaymentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("payment %s is in status %s but requires status %s", e.ID, e.Current, e.Required)
}

// ValidationError reports a request field the service rejected while
// defending its own invariants. The transport layer performs the
// primary validation; this is the service's backstop.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
