package rabbitmq

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrNotConnected is returned when a channel is requested before a
// successful connect or after the connection has dropped.
var ErrNotConnected = errors.New("rabbitmq: connection not initialized")

const reconnectDelay = 5 * time.Second

// Connection wraps an AMQP connection with reconnect logic. On an
// unexpected close it redials after a fixed delay and re-runs any
// registered reconnect hooks (publishers reopen channels, consumers
// re-register themselves).
type Connection struct {
	url string

	mu          sync.Mutex
	conn        *amqp.Connection
	onReconnect []func(*Connection)
	closed      bool
}

// Connect establishes a connection to RabbitMQ with retries.
func Connect(url string) (*Connection, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < 30; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			log.Println("Connected to RabbitMQ")
			c := &Connection{url: url, conn: conn}
			go c.watch(conn)
			return c, nil
		}
		log.Printf("Failed to connect to RabbitMQ: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("could not connect to RabbitMQ after 30 attempts: %w", err)
}

// Channel opens a new AMQP channel.
func (c *Connection) Channel() (*amqp.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.conn.IsClosed() {
		return nil, ErrNotConnected
	}
	return c.conn.Channel()
}

// OnReconnect registers fn to run after every successful reconnect.
func (c *Connection) OnReconnect(fn func(*Connection)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReconnect = append(c.onReconnect, fn)
}

// Close closes the connection and stops the reconnect watcher.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// watch blocks until conn closes. A nil close error means Close was
// called deliberately; anything else triggers the redial loop.
func (c *Connection) watch(conn *amqp.Connection) {
	amqpErr := <-conn.NotifyClose(make(chan *amqp.Error, 1))
	if amqpErr == nil {
		return
	}
	log.Printf("RabbitMQ connection closed: %v, reconnecting in %s...", amqpErr, reconnectDelay)

	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		time.Sleep(reconnectDelay)

		newConn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("Failed to reconnect to RabbitMQ: %v, retrying in %s...", err, reconnectDelay)
			continue
		}

		c.mu.Lock()
		c.conn = newConn
		hooks := append([]func(*Connection){}, c.onReconnect...)
		c.mu.Unlock()

		log.Println("Reconnected to RabbitMQ")
		go c.watch(newConn)

		for _, fn := range hooks {
			fn(c)
		}
		return
	}
}
