package notify

import (
	"context"
	"log"

	"ordertrack/messaging"
	"ordertrack/orders"
	"ordertrack/store"
)

// Broadcaster fans a rendered message out to connected clients. notifyd
// wires www.Hub here.
type Broadcaster interface {
	Broadcast(message string)
}

// Consumer subscribes to the order events topic, renders a notification per
// event and hands it to the broadcaster. Delivery is at-least-once, so the
// same event may be handled more than once; rendering is stateless and each
// delivery produces one broadcast.
type Consumer struct {
	client *messaging.Client
	topic  string
	hub    Broadcaster
	audit  *store.DB // optional audit log, may be nil
}

// NewConsumer creates an event consumer.
func NewConsumer(client *messaging.Client, topic string, hub Broadcaster, audit *store.DB) *Consumer {
	return &Consumer{
		client: client,
		topic:  topic,
		hub:    hub,
		audit:  audit,
	}
}

// Start subscribes to the events topic and begins processing messages.
func (c *Consumer) Start(ctx context.Context) error {
	return c.client.Subscribe(ctx, c.topic, c.handleMessage)
}

// handleMessage processes one delivered event. Failures are contained here:
// a bad payload is logged and skipped, never escalated.
func (c *Consumer) handleMessage(payload []byte) {
	event, err := messaging.DecodeOrderEvent(payload)
	if err != nil {
		log.Printf("order event: %v", err)
		return
	}

	message := MessageFor(orders.Status(event.Status), event.CustomerName)
	log.Printf("notification for order %s (%s): %q", event.ID, event.Status, message)

	if c.audit != nil {
		if err := c.audit.InsertNotification(event.ID, event.Status, message); err != nil {
			log.Printf("audit notification for order %s: %v", event.ID, err)
		}
	}

	c.hub.Broadcast(message)
}
