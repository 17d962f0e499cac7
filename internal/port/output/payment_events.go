package output

import (
	"time"

	"github.com/cashflow/payment-records/internal/core"
	"github.com/google/uuid"
)

// PaymentEvent is a lifecycle notification published after a transition
type PaymentEvent struct {
	PaymentID uuid.UUID          `json:"payment_id"`
	Status    core.PaymentStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

// PaymentEvents is an output port (secondary port) for lifecycle notifications
// Secondary adapters (RabbitMQ implementations) will implement this
type PaymentEvents interface {
	// PublishPaymentEvent publishes a lifecycle event. Best effort: the
	// service logs failures instead of failing the operation.
	PublishPaymentEvent(event PaymentEvent) error
	// Close closes the messaging connection
	Close() error
}
