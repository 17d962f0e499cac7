package output

import "time"

// PaymentMetrics is an output port for the service's observability
// counters and timers. Injected so tests can substitute recording fakes.
type PaymentMetrics interface {
	// PaymentCreated increments the created-payments counter
	PaymentCreated()
	// PaymentProcessed increments the processed-payments counter,
	// tagged by settlement outcome
	PaymentProcessed(success bool)
	// ProcessingDuration records how long one process call took
	ProcessingDuration(d time.Duration)
}
