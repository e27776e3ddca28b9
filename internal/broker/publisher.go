package broker

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ticketkit/ticket-store/internal/events"
)

// pubSubClient is the subset of the go-redis client used for publishing.
type pubSubClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher sends encoded ticket events to a Redis channel.
type Publisher struct {
	client  pubSubClient
	channel string
	codec   events.Codec
}

// NewPublisher builds a publisher for channel.
func NewPublisher(client pubSubClient, channel string, codec events.Codec) *Publisher {
	return &Publisher{client: client, channel: channel, codec: codec}
}

// Publish encodes event and publishes it. It returns the number of subscribers that received it.
func (p *Publisher) Publish(ctx context.Context, event events.Event) (int64, error) {
	payload, err := p.codec.Encode(event)
	if err != nil {
		return 0, fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return 0, fmt.Errorf("publish event %s to %s: %w", event.ID, p.channel, err)
	}
	return receivers, nil
}

// Channel returns the channel events are published on.
func (p *Publisher) Channel() string {
	return p.channel
}
