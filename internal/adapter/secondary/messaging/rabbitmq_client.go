package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashflow/payment-records/internal/port/output"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName  = "payments"
	QueueName     = "payment_events"
	RoutingKey    = "payment.lifecycle"
	PrefetchCount = 1 // Process one message at a time per consumer
)

// RabbitMQClient is a secondary adapter that implements PaymentEvents output port
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewRabbitMQClient creates a new RabbitMQ client
func NewRabbitMQClient(amqpURL string, logger *slog.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare exchange
	err = channel.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bind queue to exchange
	err = channel.QueueBind(
		QueueName,
		RoutingKey,
		ExchangeName,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// PublishPaymentEvent publishes a payment lifecycle event
func (c *RabbitMQClient) PublishPaymentEvent(event output.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // Make message persistent
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	c.logger.Debug("published payment event",
		"paymentId", event.PaymentID, "status", event.Status)
	return nil
}

// ConsumePaymentEvents starts consuming payment lifecycle events
func (c *RabbitMQClient) ConsumePaymentEvents(handler func(output.PaymentEvent) error) error {
	// Set QoS to process one message at a time
	err := c.channel.Qos(
		PrefetchCount,
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		QueueName,
		"",    // consumer tag
		false, // auto-ack (we'll manually ack after processing)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("started consuming payment events")

	go func() {
		for msg := range msgs {
			var event output.PaymentEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("error unmarshaling event", "error", err)
				msg.Nack(false, false) // Malformed, drop it
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("error handling payment event",
					"paymentId", event.PaymentID, "error", err)
				msg.Nack(false, true) // Requeue for retry
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// Close closes the RabbitMQ connection
func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
