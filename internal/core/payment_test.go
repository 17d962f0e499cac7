package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusIsValid(t *testing.T) {
	valid := []PaymentStatus{
		PaymentStatusPending, PaymentStatusProcessing, PaymentStatusCompleted,
		PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	assert.False(t, PaymentStatus("SETTLED").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestTransitionPredicates(t *testing.T) {
	tests := []struct {
		status      PaymentStatus
		modifiable  bool
		cancellable bool
		refundable  bool
		terminal    bool
	}{
		{PaymentStatusPending, true, true, false, false},
		{PaymentStatusProcessing, true, true, false, false},
		{PaymentStatusCompleted, false, false, true, false},
		{PaymentStatusFailed, true, true, false, true},
		{PaymentStatusCancelled, true, false, false, true},
		{PaymentStatusRefunded, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			p := &Payment{Status: tt.status}
			assert.Equal(t, tt.modifiable, p.IsModifiable(), "IsModifiable")
			assert.Equal(t, tt.cancellable, p.IsCancellable(), "IsCancellable")
			assert.Equal(t, tt.refundable, p.IsRefundable(), "IsRefundable")
			assert.Equal(t, tt.terminal, p.IsTerminal(), "IsTerminal")
		})
	}
}

func TestIsPending(t *testing.T) {
	assert.True(t, (&Payment{Status: PaymentStatusPending}).IsPending())
	assert.False(t, (&Payment{Status: PaymentStatusProcessing}).IsPending())
}
