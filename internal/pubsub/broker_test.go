package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sessionStub struct {
	UserID string
	Email  string
}

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(100 * time.Millisecond):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversTypedPayload(t *testing.T) {
	broker := NewBroker[sessionStub]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(CreatedEvent, sessionStub{UserID: "u-1", Email: "budi@x.com"})

	event := receive(t, ch)
	require.Equal(t, CreatedEvent, event.Type)
	require.Equal(t, "u-1", event.Payload.UserID)
	require.False(t, event.Timestamp.IsZero())
}

func TestBroker_FanOut(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()
	subs := []<-chan Event[int]{broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(DeletedEvent, 7)

	for _, ch := range subs {
		event := receive(t, ch)
		require.Equal(t, 7, event.Payload)
		require.Equal(t, DeletedEvent, event.Type)
	}
}

func TestBroker_UnsubscribesOnCancel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_PublishDoesNotBlock(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	broker.Publish(CreatedEvent, 1)

	done := make(chan struct{})
	go func() {
		broker.Publish(CreatedEvent, 2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked")
	}
	require.Equal(t, 1, receive(t, ch).Payload)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)
	require.Equal(t, 0, broker.SubscriberCount())

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribe after close returns a closed channel")

	broker.Publish(CreatedEvent, "ignored")
}
