package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"go-storefront/pkg/logger"
)

// Connection manages a RabbitMQ connection
type Connection struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logger.Logger
	mu      sync.RWMutex
}

// NewConnection creates a new RabbitMQ connection
func NewConnection(url string, log *logger.Logger) (*Connection, error) {
	c := &Connection{
		url: url,
		log: log,
	}

	if err := c.connect(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Connection) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	c.conn = conn
	c.channel = ch

	c.log.Info("connected to RabbitMQ")
	return nil
}

// Channel returns the current channel
func (c *Connection) Channel() *amqp.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channel
}

// Close closes the connection
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Publisher publishes messages to RabbitMQ
type Publisher struct {
	conn     *Connection
	exchange string
	log      *logger.Logger
}

// NewPublisher creates a new publisher
func NewPublisher(conn *Connection, exchange string, log *logger.Logger) (*Publisher, error) {
	// Declare exchange
	err := conn.Channel().ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish publishes a message
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	traceID := logger.GetTraceID(ctx)

	err = p.conn.Channel().PublishWithContext(
		ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			Body:          body,
			DeliveryMode:  amqp.Persistent,
			Timestamp:     time.Now(),
			CorrelationId: traceID,
			Headers: amqp.Table{
				"x-trace-id": traceID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.log.WithContext(ctx).Debug("message published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", routingKey),
		zap.String("trace_id", traceID),
	)

	return nil
}
