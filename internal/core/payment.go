package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// IsValid reports whether s is one of the six known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment represents a payment domain entity
type Payment struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Status        PaymentStatus
	Description   string
	MerchantID    string
	CustomerID    string
	CardLastFour  string
	PaymentMethod string
	ReferenceID   string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	ProcessedAt   *time.Time
}

// IsPending checks if payment is in pending status
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsModifiable reports whether field edits are still allowed.
// Completed and refunded payments are frozen.
func (p *Payment) IsModifiable() bool {
	return p.Status != PaymentStatusCompleted && p.Status != PaymentStatusRefunded
}

// IsCancellable reports whether the payment can still be cancelled.
// Cancelling an already-cancelled payment is rejected.
func (p *Payment) IsCancellable() bool {
	return p.IsModifiable() && p.Status != PaymentStatusCancelled
}

// IsRefundable reports whether the payment can be refunded.
func (p *Payment) IsRefundable() bool {
	return p.Status == PaymentStatusCompleted
}

// IsTerminal checks if payment is in a state with no outgoing transitions
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case PaymentStatusCancelled, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}
