// Package pubsub provides a small typed publish/subscribe broker and the
// glue needed to feed its events into a Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the published payload.
type EventType string

const (
	CreatedEvent EventType = "created"
	DeletedEvent EventType = "deleted"
)

// Event is a published payload together with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
