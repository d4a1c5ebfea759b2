package rabbitmq

import (
	"context"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes messages to topic exchanges and direct queues.
// All publishes are persistent so messages survive a broker restart.
type Publisher struct {
	conn *Connection

	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher creates a new publisher with its own channel.
func NewPublisher(conn *Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish declares the topic exchange and sends a message with the given
// routing key. Declaration is idempotent; doing it per publish keeps the
// publisher correct across reconnects.
func (p *Publisher) Publish(exchange, routingKey string, body []byte, correlationID string) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.ExchangeDeclare(
		exchange,
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

	log.Printf("[Publisher] Publishing: exchange=%s routing_key=%s correlation_id=%s", exchange, routingKey, correlationID)
	return p.send(ch, exchange, routingKey, body, correlationID)
}

// SendToQueue declares the durable queue and sends a message directly to
// it via the default exchange.
func (p *Publisher) SendToQueue(queue string, body []byte, correlationID string) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	log.Printf("[Publisher] Sending to queue: queue=%s correlation_id=%s", queue, correlationID)
	return p.send(ch, "", queue, body, correlationID)
}

func (p *Publisher) send(ch *amqp.Channel, exchange, routingKey string, body []byte, correlationID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return ch.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: correlationID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
		},
	)
}

// channel returns the publisher's channel, reopening it if the previous
// one died with the connection.
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	p.ch = ch
	return ch, nil
}

// Close closes the publisher channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
