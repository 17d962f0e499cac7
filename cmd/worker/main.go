package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cashflow/payment-records/internal/adapter/secondary/messaging"
	"github.com/cashflow/payment-records/internal/config"
	"github.com/cashflow/payment-records/internal/logging"
	"github.com/cashflow/payment-records/internal/port/output"
)

// The worker tails the lifecycle-event queue and writes an audit log of
// every transition. Settlement itself is synchronous in the API; the
// queue carries notifications only.
func main() {
	cfg := config.MustLoadConfig(".")
	logger := logging.GetLogger("payment-records-worker")

	msgClient, err := messaging.NewRabbitMQClient(cfg.RabbitMQ.URL, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		return
	}
	defer msgClient.Close()

	err = msgClient.ConsumePaymentEvents(func(event output.PaymentEvent) error {
		logger.Info("payment lifecycle event",
			"paymentId", event.PaymentID,
			"status", event.Status,
			"at", event.Timestamp)
		return nil
	})
	if err != nil {
		logger.Error("failed to start consuming events", "error", err)
		return
	}

	logger.Info("payment event worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker")
}
