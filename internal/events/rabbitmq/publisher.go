// Package rabbitmq publishes events to RabbitMQ queues.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

// ErrNotAcknowledged is returned when the broker nacks a publish.
var ErrNotAcknowledged = errors.New("broker did not acknowledge message")

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type amqpChannel interface {
	Confirm(noWait bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error)
	Close() error
}

type amqpConnection interface {
	Channel() (amqpChannel, error)
	Close() error
}

type dialFunc func(url string) (amqpConnection, error)

type connectionWrapper struct{ c *amqp.Connection }

func (w connectionWrapper) Channel() (amqpChannel, error) {
	ch, err := w.c.Channel()
	if err != nil {
		return nil, err
	}
	return channelWrapper{ch: ch}, nil
}
func (w connectionWrapper) Close() error { return w.c.Close() }

type channelWrapper struct{ ch *amqp.Channel }

func (w channelWrapper) Confirm(noWait bool) error { return w.ch.Confirm(noWait) }
func (w channelWrapper) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	return w.ch.QueueDeclare(name, durable, autoDelete, exclusive, noWait, args)
}
func (w channelWrapper) PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error) {
	dc, err := w.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, mandatory, immediate, msg)
	if err != nil {
		return nil, err
	}
	return dc, nil
}
func (w channelWrapper) Close() error { return w.ch.Close() }

func dialAMQP(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return connectionWrapper{c: conn}, nil
}

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher opens a connection per publish, waits for the broker to confirm
// the message and releases the connection before returning.
type Publisher struct {
	url     string
	dial    dialFunc
	timeout time.Duration
	logger  *logger.Logger
}

// NewPublisher creates a Publisher for the broker at url.
func NewPublisher(url string, timeout time.Duration, logger *logger.Logger) *Publisher {
	return &Publisher{
		url:     url,
		dial:    dialAMQP,
		timeout: timeout,
		logger:  logger,
	}
}

// Publish sends payload as JSON to the non-durable queue named topic.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	conn, err := p.dial(p.url)
	if err != nil {
		p.logger.Error("RabbitMQ publisher: failed to connect", "error", err.Error())
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			p.logger.Warn("RabbitMQ publisher: failed to close connection", "error", err.Error())
		}
	}()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Error("RabbitMQ publisher: failed to open channel", "error", err.Error())
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() {
		if err := ch.Close(); err != nil {
			p.logger.Warn("RabbitMQ publisher: failed to close channel", "error", err.Error())
		}
	}()

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	q, err := ch.QueueDeclare(topic, false, false, false, false, nil)
	if err != nil {
		p.logger.Error("RabbitMQ publisher: failed to declare queue",
			"topic", topic,
			"error", err.Error())
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	dc, err := ch.PublishWithDeferredConfirmWithContext(ctx, "", q.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		p.logger.Error("RabbitMQ publisher: error sending event",
			"topic", topic,
			"error", err.Error())
		return fmt.Errorf("failed to publish event: %w", err)
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to wait for broker confirmation: %w", err)
	}
	if !acked {
		return ErrNotAcknowledged
	}

	p.logger.Debug("RabbitMQ publisher: event published",
		"topic", topic)

	return nil
}
