package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultHandlerTimeout = 30 * time.Second

// RetryPolicy bounds in-process redelivery attempts before a message is
// dead-lettered. The same policy applies to every queue a consumer owns.
type RetryPolicy struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// ConsumerConfig holds configuration for setting up a consumer.
type ConsumerConfig struct {
	QueueName    string
	DLQName      string
	Exchange     string // empty for direct queues
	RoutingKeys  []string
	ConsumerName string

	Retry          RetryPolicy
	HandlerTimeout time.Duration
}

// MessageHandler processes a delivered message. The context carries the
// per-message deadline; a handler that outlives it counts as a failed
// attempt. Return nil to ack, an error to retry and eventually DLQ.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// SetupConsumer declares queues (main + DLQ), binds them, and starts
// consuming. The consumer re-registers itself after a broker reconnect.
func SetupConsumer(conn *Connection, cfg ConsumerConfig, handler MessageHandler) error {
	if err := startConsumer(conn, cfg, handler); err != nil {
		return err
	}
	conn.OnReconnect(func(c *Connection) {
		if err := startConsumer(c, cfg, handler); err != nil {
			log.Printf("[%s] Failed to restart consumer after reconnect: %v", cfg.ConsumerName, err)
		}
	})
	return nil
}

func startConsumer(conn *Connection, cfg ConsumerConfig, handler MessageHandler) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}

	if cfg.Exchange != "" {
		err = ch.ExchangeDeclare(
			cfg.Exchange,
			"topic",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}
	}

	// Declare DLQ
	_, err = ch.QueueDeclare(
		cfg.DLQName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	// Declare main queue with DLQ settings
	args := amqp.Table{
		"x-dead-letter-exchange":    "",          // default exchange
		"x-dead-letter-routing-key": cfg.DLQName, // route to DLQ
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		args,
	)
	if err != nil {
		return err
	}

	// Bind queue to exchange with routing keys
	for _, key := range cfg.RoutingKeys {
		err = ch.QueueBind(
			cfg.QueueName,
			key,
			cfg.Exchange,
			false,
			nil,
		)
		if err != nil {
			return err
		}
	}

	// Prefetch 1: one in-flight message per consumer, processed in order
	err = ch.Qos(1, 0, false)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(
		cfg.QueueName,
		cfg.ConsumerName,
		false, // auto-ack = false (manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			log.Printf("[%s] Received message: routing_key=%s correlation_id=%s",
				cfg.ConsumerName, msg.RoutingKey, msg.CorrelationId)

			if err := handleWithRetry(context.Background(), cfg, handler, msg); err != nil {
				log.Printf("[%s] Giving up on message: %v, sending to DLQ",
					cfg.ConsumerName, err)
				_ = msg.Nack(false, false) // no requeue, goes to DLQ
			} else {
				_ = msg.Ack(false)
			}
		}
	}()

	log.Printf("[%s] Consumer started, listening on queue: %s", cfg.ConsumerName, cfg.QueueName)
	return nil
}

// handleWithRetry runs the handler up to MaxAttempts times, each under
// the configured timeout, and returns the last error once exhausted.
func handleWithRetry(ctx context.Context, cfg ConsumerConfig, handler MessageHandler, msg amqp.Delivery) error {
	attempts := cfg.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = runWithTimeout(ctx, timeout, handler, msg)
		if err == nil {
			return nil
		}
		if attempt < attempts {
			log.Printf("[%s] Attempt %d/%d failed: %v, retrying in %s",
				cfg.ConsumerName, attempt, attempts, err, cfg.Retry.RetryDelay)
			time.Sleep(cfg.Retry.RetryDelay)
		}
	}
	return err
}

// runWithTimeout reports a timeout as a handler failure. The handler
// goroutine itself cannot be killed; it is expected to honor ctx.
func runWithTimeout(ctx context.Context, timeout time.Duration, handler MessageHandler, msg amqp.Delivery) error {
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- handler(hctx, msg) }()

	select {
	case err := <-done:
		return err
	case <-hctx.Done():
		return fmt.Errorf("handler timed out after %s: %w", timeout, hctx.Err())
	}
}
