package messaging

import (
	"context"
	"fmt"

	"ordertrack/store"
)

// Publisher publishes order snapshots to the durable events topic. It
// implements orders.EventPublisher.
type Publisher struct {
	client *Client
	topic  string
}

// NewPublisher creates a publisher bound to the events topic.
func NewPublisher(client *Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// PublishOrder emits one event carrying the post-write order snapshot.
// Delivery is at-least-once once the broker accepts the hand-off; a crash
// between the store commit and this call drops the event.
func (p *Publisher) PublishOrder(ctx context.Context, o *store.Order) error {
	data, err := NewOrderEvent(o).Encode()
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.topic, data); err != nil {
		return fmt.Errorf("publish order %s: %w", o.ID, err)
	}
	return nil
}
