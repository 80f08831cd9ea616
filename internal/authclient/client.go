// Package authclient adapts an account backend into the registration
// collaborator: a backend grant becomes an established session, a backend
// rejection becomes a failure outcome and anything else is a fault.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/session"
)

// Registration is the account-creation request sent to a Backend.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Grant is what a backend hands back for a created account.
type Grant struct {
	Token     string
	UserID    string
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Session converts the grant into the session it establishes.
func (g Grant) Session() session.Session {
	return session.Session{
		Token:     session.Token(g.Token),
		UserID:    g.UserID,
		Name:      g.Name,
		Email:     g.Email,
		Role:      g.Role,
		ExpiresAt: g.ExpiresAt,
	}
}

// Backend creates accounts. Implementations report a refusal the user can
// act on as *RejectedError.
type Backend interface {
	Register(ctx context.Context, reg Registration) (Grant, error)
}

// Establisher makes a session current and ends it.
type Establisher interface {
	Establish(ctx context.Context, s session.Session) error
	End(ctx context.Context) error
}

// Client implements registration.AuthSessionClient.
type Client struct {
	backend  Backend
	sessions Establisher
}

var _ registration.AuthSessionClient = (*Client)(nil)

// NewClient returns a client that registers through backend and establishes
// the resulting session on sessions.
func NewClient(backend Backend, sessions Establisher) *Client {
	return &Client{backend: backend, sessions: sessions}
}

// Register creates the account and establishes its session. A session is
// only kept when the backend succeeded and ctx is still live after it was
// established; a caller that gave up meanwhile gets the session ended again.
func (c *Client) Register(ctx context.Context, name, email, password string) (registration.AuthOutcome, error) {
	grant, err := c.backend.Register(ctx, Registration{Name: name, Email: email, Password: password})
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			log.Warn(log.CatAuth, "registration rejected by backend", "message", rejected.Message)
			return registration.Failure(rejected.Message), nil
		}
		return registration.AuthOutcome{}, fmt.Errorf("register account: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return registration.AuthOutcome{}, fmt.Errorf("register account: %w", err)
	}

	s := grant.Session()
	if err := c.sessions.Establish(ctx, s); err != nil {
		return registration.AuthOutcome{}, fmt.Errorf("establish session: %w", err)
	}
	if err := ctx.Err(); err != nil {
		if endErr := c.sessions.End(context.WithoutCancel(ctx)); endErr != nil {
			log.ErrorErr(log.CatSession, "ending abandoned session", endErr)
		}
		return registration.AuthOutcome{}, fmt.Errorf("register account: %w", err)
	}
	log.Info(log.CatAuth, "account registered", "user_id", grant.UserID)
	return registration.Success(s), nil
}
