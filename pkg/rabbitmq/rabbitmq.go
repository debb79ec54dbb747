package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	"toystore/pkg/logger"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	// ExchangeName is the topic exchange carrying order lifecycle events.
	ExchangeName = "order_events"
	// QueueName is the durable queue the order event consumer reads from.
	QueueName = "order_events_log"
	// BindingKey matches every order routing key.
	BindingKey = "order.#"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ and declares the order events exchange.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	logger.Log.Info("RabbitMQ client connected", zap.String("exchange", ExchangeName))

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to the order events exchange.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.channel.Publish(
		ExchangeName, // exchange
		routingKey,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// ConsumeOrderEvents binds the log queue to every order routing key and
// hands each delivery to messageHandler on a background goroutine.
// Handler errors nack the message without requeueing it.
func (c *Client) ConsumeOrderEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		QueueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	if err := c.channel.QueueBind(queue.Name, BindingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Log.Info("waiting for order events", zap.String("queue", queue.Name))

	go func() {
		for msg := range msgs {
			handleDelivery(msg, messageHandler)
		}
	}()
	return nil
}

// acknowledger is the part of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(msg amqp.Delivery, messageHandler func(msg amqp.Delivery) error) {
	settle(&msg, msg.RoutingKey, msg.DeliveryTag, func() error { return messageHandler(msg) })
}

func settle(ack acknowledger, routingKey string, tag uint64, process func() error) {
	if err := process(); err != nil {
		logger.Log.Error("failed to process order event",
			zap.String("routing_key", routingKey),
			zap.Uint64("delivery_tag", tag),
			zap.Error(err),
		)
		if nackErr := ack.Nack(false, false); nackErr != nil {
			logger.Log.Error("failed to nack message", zap.Uint64("delivery_tag", tag), zap.Error(nackErr))
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		logger.Log.Error("failed to ack message", zap.Uint64("delivery_tag", tag), zap.Error(ackErr))
	}
}

// LogOrderEvent is the default handler: it records the event in the application log.
func LogOrderEvent(msg amqp.Delivery) error {
	if len(msg.Body) == 0 {
		return fmt.Errorf("empty order event %q", msg.RoutingKey)
	}
	logger.Log.Info("received order event",
		zap.String("routing_key", msg.RoutingKey),
		zap.ByteString("body", msg.Body),
	)
	return nil
}
