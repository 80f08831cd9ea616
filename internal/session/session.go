// Package session holds the process-wide authenticated session.
//
// The Manager is initialized once per application run and torn down on exit.
// Sessions live in an in-memory cache that expires them with their token, and
// every establish/end is published on a broker so the UI can react.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/enernova/enernova/internal/cachemanager"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/pubsub"
)

// ErrNotInitialized is returned by operations on a Manager before Init or
// after Close.
var ErrNotInitialized = errors.New("session manager not initialized")

// ErrExpired is returned when establishing a session whose token has already
// expired.
var ErrExpired = errors.New("session already expired")

// Token identifies a session in the store.
type Token string

// Session is an authenticated user session.
type Session struct {
	Token     Token
	UserID    string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now. A zero
// ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Manager owns the current session.
type Manager struct {
	mu      sync.Mutex
	store   *cachemanager.InMemoryCacheManager[Token, Session]
	broker  *pubsub.Broker[Session]
	current Token
	now     func() time.Time
}

// NewManager returns an uninitialized Manager.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Init prepares the store and event broker. Calling Init twice is a no-op.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		return nil
	}
	m.store = cachemanager.NewInMemoryCacheManager[Token, Session]("sessions", cachemanager.NoExpiration, time.Minute)
	m.broker = pubsub.NewBroker[Session]()
	m.store.OnEvicted(m.evicted)
	log.Debug(log.CatSession, "session manager initialized")
	return nil
}

// Close ends the current session and shuts the broker down. Subscribers see
// their channels closed.
func (m *Manager) Close() {
	m.mu.Lock()
	store, broker := m.store, m.broker
	m.store, m.broker, m.current = nil, nil, ""
	m.mu.Unlock()

	if store == nil {
		return
	}
	_ = store.Flush(context.Background())
	broker.Close()
	log.Debug(log.CatSession, "session manager closed")
}

// Broker returns the lifecycle event broker, or nil before Init.
func (m *Manager) Broker() *pubsub.Broker[Session] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broker
}

// Establish makes s the current session, replacing any previous one.
func (m *Manager) Establish(ctx context.Context, s Session) error {
	if s.Token == "" {
		return fmt.Errorf("establish session: empty token")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	if s.Expired(m.now()) {
		return ErrExpired
	}

	m.mu.Lock()
	if m.store == nil {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	store, broker, previous := m.store, m.broker, m.current
	m.current = s.Token
	m.mu.Unlock()

	if previous != "" && previous != s.Token {
		_ = store.Delete(ctx, previous)
	}

	ttl := cachemanager.NoExpiration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(m.now())
	}
	store.Set(ctx, s.Token, s, ttl)
	broker.Publish(pubsub.CreatedEvent, s)
	log.Info(log.CatSession, "session established", "user_id", s.UserID, "role", s.Role)
	return nil
}

// Current returns the live session, if any.
func (m *Manager) Current(ctx context.Context) (Session, bool) {
	m.mu.Lock()
	store, token := m.store, m.current
	m.mu.Unlock()

	if store == nil || token == "" {
		return Session{}, false
	}
	s, ok := store.Get(ctx, token)
	if !ok || s.Expired(m.now()) {
		return Session{}, false
	}
	return s, true
}

// End tears down the current session. Ending when no session exists is not
// an error.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	if m.store == nil {
		m.mu.Unlock()
		return ErrNotInitialized
	}
	store, token := m.store, m.current
	m.mu.Unlock()

	if token == "" {
		return nil
	}
	return store.Delete(ctx, token)
}

// evicted runs for both explicit deletes and expiry.
func (m *Manager) evicted(token Token, s Session) {
	m.mu.Lock()
	broker := m.broker
	if m.current == token {
		m.current = ""
	}
	m.mu.Unlock()

	if broker != nil {
		broker.Publish(pubsub.DeletedEvent, s)
	}
	log.Info(log.CatSession, "session ended", "user_id", s.UserID)
}
