// Package redis publishes events to Redis streams.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/userkeeper-server/internal/logger"
	"github.com/dtroode/userkeeper-server/internal/model"
)

const (
	// StreamPrefix prefixes the topic to build the stream key.
	StreamPrefix = "events:"

	// MaxStreamLen is the approximate max length of each stream.
	MaxStreamLen = 100000
)

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

var _ model.EventPublisher = (*Publisher)(nil)

// Publisher appends events to the stream "events:<topic>".
type Publisher struct {
	client  streamAdder
	timeout time.Duration
	logger  *logger.Logger
}

// NewClient connects to Redis at url and verifies the connection.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// NewPublisher creates a new Publisher.
func NewPublisher(client streamAdder, timeout time.Duration, logger *logger.Logger) *Publisher {
	return &Publisher{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// StreamKey returns the stream key for topic.
func StreamKey(topic string) string {
	return StreamPrefix + topic
}

// Publish adds payload as JSON to the topic stream. The event is
// acknowledged once Redis returns the entry id.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	streamID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(topic),
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()
	if err != nil {
		p.logger.Error("Redis publisher: error sending event",
			"topic", topic,
			"error", err.Error())
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Redis publisher: event published",
		"topic", topic,
		"stream_id", streamID)

	return nil
}
