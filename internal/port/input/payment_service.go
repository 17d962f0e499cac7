package input

import (
	"time"

	"github.com/cashflow/payment-records/internal/core"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService is an input port (primary port) for payment operations
// Primary adapters (HTTP handlers) will use this
type PaymentService interface {
	// CreatePayment creates a new payment in PENDING status
	CreatePayment(req CreatePaymentRequest) (*PaymentResponse, error)

	// GetPayment retrieves a payment by ID
	GetPayment(id uuid.UUID) (*PaymentResponse, error)

	// ListPayments returns one page of payments, optionally filtered by
	// merchant. An empty merchantID means no filter.
	ListPayments(merchantID string, page Pageable) (*Page, error)

	// UpdatePayment merges the non-nil request fields onto the payment
	UpdatePayment(id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error)

	// CancelPayment transitions the payment to CANCELLED
	CancelPayment(id uuid.UUID) error

	// ProcessPayment walks PENDING -> PROCESSING -> COMPLETED or FAILED.
	// A FAILED settlement is returned as a normal result, not an error.
	ProcessPayment(id uuid.UUID) (*PaymentResponse, error)

	// RefundPayment transitions a COMPLETED payment to REFUNDED
	RefundPayment(id uuid.UUID) (*PaymentResponse, error)
}

// CreatePaymentRequest represents the request to create a payment
type CreatePaymentRequest struct {
	Amount        decimal.Decimal
	Currency      string
	Description   string
	MerchantID    string
	CustomerID    string
	CardLastFour  string
	PaymentMethod string
	ReferenceID   string
}

// UpdatePaymentRequest carries a partial update. Nil fields are left
// untouched; merchant and customer are fixed at creation.
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal
	Currency      *string
	Description   *string
	CardLastFour  *string
	PaymentMethod *string
	ReferenceID   *string
}

// Pageable selects one page of a listing
type Pageable struct {
	Page int
	Size int
}

// Page is one page of payment responses plus pagination totals
type Page struct {
	Content       []*PaymentResponse
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Status        core.PaymentStatus
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

// FromPayment maps the domain entity to a response
func FromPayment(p *core.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		Description:   p.Description,
		MerchantID:    p.MerchantID,
		CustomerID:    p.CustomerID,
		CardLastFour:  p.CardLastFour,
		PaymentMethod: p.PaymentMethod,
		ReferenceID:   p.ReferenceID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ProcessedAt:   p.ProcessedAt,
	}
}
