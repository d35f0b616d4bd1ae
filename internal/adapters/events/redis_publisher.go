// Package events publishes core domain events to Redis pub/sub channels.
// Publishing is fire-and-forget from the core's point of view: callers log
// failures and move on.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/termvault/fd_account_app/internal/core/domain"
	"github.com/termvault/fd_account_app/internal/core/ports"
)

// Channel names, one per event type.
const (
	ChannelAccountCreated         = "fd:account:created"
	ChannelAccountClosed          = "fd:account:closed"
	ChannelCommunicationRequested = "fd:communication:requested"
)

// RedisPublisher implements ports.EventPublisher over Redis pub/sub.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates a publisher on an established Redis client.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

var _ ports.EventPublisher = (*RedisPublisher)(nil)

func (p *RedisPublisher) PublishAccountCreated(ctx context.Context, event domain.AccountCreatedEvent) error {
	return p.publish(ctx, ChannelAccountCreated, event)
}

func (p *RedisPublisher) PublishAccountClosed(ctx context.Context, event domain.AccountClosedEvent) error {
	return p.publish(ctx, ChannelAccountClosed, event)
}

func (p *RedisPublisher) PublishCommunicationRequested(ctx context.Context, event domain.CommunicationRequestedEvent) error {
	return p.publish(ctx, ChannelCommunicationRequested, event)
}

func (p *RedisPublisher) publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", channel, err)
	}
	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", channel, err)
	}
	return nil
}
