package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/costura/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SettlementsChannel is the Redis pub/sub channel carrying settlement
// events for dashboard consumers
const SettlementsChannel = "settlements.events"

// Envelope is the wire format published to Redis. The payload carries the
// full event struct, JSON-encoded, so consumers can decode by type.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a domain event in the wire envelope
func NewEnvelope(event shared.DomainEvent) (*Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return &Envelope{
		EventID:       event.EventID().String(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID().String(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
	}, nil
}

// RedisForwarder forwards domain events to a Redis pub/sub channel.
// Registered on the in-memory bus as a wildcard handler; delivery is
// fire-and-forget and a Redis outage never fails the publishing operation.
type RedisForwarder struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisForwarder creates a forwarder publishing to SettlementsChannel
func NewRedisForwarder(client *redis.Client, logger *zap.Logger) *RedisForwarder {
	return &RedisForwarder{
		client:  client,
		channel: SettlementsChannel,
		logger:  logger,
	}
}

// Handle implements shared.EventHandler
func (f *RedisForwarder) Handle(ctx context.Context, event shared.DomainEvent) error {
	envelope, err := NewEnvelope(event)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := f.client.Publish(ctx, f.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", f.channel, err)
	}

	f.logger.Debug("event forwarded to redis",
		zap.String("channel", f.channel),
		zap.String("event_type", event.EventType()),
	)
	return nil
}

// EventTypes implements shared.EventHandler. Empty means all events.
func (f *RedisForwarder) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*RedisForwarder)(nil)
