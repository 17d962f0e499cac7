package output

import (
	"github.com/cashflow/payment-records/internal/core"
	"github.com/google/uuid"
)

// PageQuery selects one page of a listing at the repository level
type PageQuery struct {
	Page int
	Size int
}

// PaymentRepository is an output port (secondary port) for payment data access
// Secondary adapters (database implementations) will implement this
type PaymentRepository interface {
	// Save inserts or updates a payment and returns the stored state
	Save(payment *core.Payment) (*core.Payment, error)

	// FindByID retrieves a payment by its ID. Returns (nil, nil) when
	// no payment exists; the service owns the not-found classification.
	FindByID(id uuid.UUID) (*core.Payment, error)

	// FindAll returns one page of payments plus the total count
	FindAll(q PageQuery) ([]*core.Payment, int64, error)

	// FindByMerchant returns one page of a merchant's payments plus the total count
	FindByMerchant(merchantID string, q PageQuery) ([]*core.Payment, int64, error)

	// FindByCustomer returns one page of a customer's payments plus the total count
	FindByCustomer(customerID string, q PageQuery) ([]*core.Payment, int64, error)

	// FindByStatus returns all payments currently in the given status
	FindByStatus(status core.PaymentStatus) ([]*core.Payment, error)
}
