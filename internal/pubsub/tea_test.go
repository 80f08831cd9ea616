package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(CreatedEvent, "session-established")

	msg := ListenCmd(ctx, ch)()
	event, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "session-established", event.Payload)
}

func TestListenCmd_NilAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)
	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_InOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(CreatedEvent, 1)
	broker.Publish(DeletedEvent, 2)

	first, ok := listener.Listen()().(Event[int])
	require.True(t, ok)
	require.Equal(t, CreatedEvent, first.Type)

	second, ok := listener.Listen()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 2, second.Payload)
	require.Equal(t, DeletedEvent, second.Type)
}
