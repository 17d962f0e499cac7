package service

import (
	"log/slog"

	"github.com/cashflow/payment-records/internal/core"
)

// Settler attempts to settle a payment during processing. A returned
// error marks the payment FAILED; nil marks it COMPLETED. A real
// payment-processor integration implements this in place of the stub.
type Settler interface {
	Settle(payment *core.Payment) error
}

// SettlerFunc adapts a function to the Settler interface
type SettlerFunc func(payment *core.Payment) error

// Settle calls f
func (f SettlerFunc) Settle(payment *core.Payment) error {
	return f(payment)
}

// NewSimulatedSettler returns the stub settler: it logs the attempt and
// always succeeds.
func NewSimulatedSettler(logger *slog.Logger) Settler {
	return SettlerFunc(func(payment *core.Payment) error {
		logger.Debug("simulating payment settlement",
			"paymentId", payment.ID, "amount", payment.Amount)
		return nil
	})
}
