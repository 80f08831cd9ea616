package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/enernova/enernova/internal/pubsub"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()
	require.NoError(t, m.Init(context.Background()))
	t.Cleanup(m.Close)
	return m
}

func budi(token Token) Session {
	return Session{
		Token:     token,
		UserID:    "u-1",
		Name:      "Budi",
		Email:     "budi@x.com",
		Role:      "contributor",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestManager_NotInitialized(t *testing.T) {
	m := NewManager()

	require.ErrorIs(t, m.Establish(context.Background(), budi("t")), ErrNotInitialized)
	require.ErrorIs(t, m.End(context.Background()), ErrNotInitialized)
	_, ok := m.Current(context.Background())
	require.False(t, ok)
	require.Nil(t, m.Broker())
	require.NotPanics(t, m.Close)
}

func TestManager_EstablishAndCurrent(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	require.NoError(t, m.Establish(ctx, budi("t1")))

	got, ok := m.Current(ctx)
	require.True(t, ok)
	require.Equal(t, "Budi", got.Name)
	require.Equal(t, Token("t1"), got.Token)
}

func TestManager_EstablishRejectsBadSessions(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	require.Error(t, m.Establish(ctx, Session{}))

	expired := budi("t1")
	expired.ExpiresAt = time.Now().Add(-time.Second)
	require.ErrorIs(t, m.Establish(ctx, expired), ErrExpired)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, m.Establish(cancelled, budi("t2")), context.Canceled)

	_, ok := m.Current(ctx)
	require.False(t, ok)
}

func TestManager_EndPublishesDeleted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newManager(t)
	events := m.Broker().Subscribe(ctx)

	require.NoError(t, m.Establish(ctx, budi("t1")))
	require.NoError(t, m.End(ctx))

	_, ok := m.Current(ctx)
	require.False(t, ok)

	created := <-events
	require.Equal(t, pubsub.CreatedEvent, created.Type)
	require.Equal(t, Token("t1"), created.Payload.Token)

	deleted := <-events
	require.Equal(t, pubsub.DeletedEvent, deleted.Type)
	require.Equal(t, Token("t1"), deleted.Payload.Token)
}

func TestManager_EndWithoutSession(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.End(context.Background()))
}

func TestManager_EstablishReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	require.NoError(t, m.Establish(ctx, budi("t1")))
	require.NoError(t, m.Establish(ctx, budi("t2")))

	got, ok := m.Current(ctx)
	require.True(t, ok)
	require.Equal(t, Token("t2"), got.Token)
	require.Equal(t, 1, m.store.Len())
}

func TestManager_SessionExpires(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	s := budi("t1")
	s.ExpiresAt = time.Now().Add(20 * time.Millisecond)
	require.NoError(t, m.Establish(ctx, s))

	require.Eventually(t, func() bool {
		_, ok := m.Current(ctx)
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestManager_CloseClosesSubscribers(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Init(context.Background()))
	events := m.Broker().Subscribe(context.Background())

	m.Close()

	_, open := <-events
	require.False(t, open)
}
