package authclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/enernova/enernova/internal/session"
)

type stubBackend struct {
	got   Registration
	grant Grant
	err   error
}

func (b *stubBackend) Register(_ context.Context, reg Registration) (Grant, error) {
	b.got = reg
	return b.grant, b.err
}

type stubSessions struct {
	established []session.Session
	ended       int
	err         error
	// afterEstablish runs once the session is recorded.
	afterEstablish func()
}

func (s *stubSessions) Establish(_ context.Context, sess session.Session) error {
	if s.err != nil {
		return s.err
	}
	s.established = append(s.established, sess)
	if s.afterEstablish != nil {
		s.afterEstablish()
	}
	return nil
}

func (s *stubSessions) End(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.ended++
	return nil
}

func TestClient_SuccessEstablishesSession(t *testing.T) {
	backend := &stubBackend{grant: Grant{Token: "tok", UserID: "u-1", Name: "Budi", Email: "budi@x.com", Role: "contributor"}}
	sessions := &stubSessions{}
	c := NewClient(backend, sessions)

	outcome, err := c.Register(context.Background(), "Budi", "budi@x.com", "secret")

	require.NoError(t, err)
	require.True(t, outcome.Succeeded())
	require.Equal(t, Registration{Name: "Budi", Email: "budi@x.com", Password: "secret"}, backend.got)
	require.Len(t, sessions.established, 1)
	require.Equal(t, session.Token("tok"), sessions.established[0].Token)
	require.Equal(t, sessions.established[0], outcome.Session())
}

func TestClient_RejectionIsFailureOutcome(t *testing.T) {
	sessions := &stubSessions{}
	c := NewClient(&stubBackend{err: &RejectedError{Message: "Email sudah terdaftar"}}, sessions)

	outcome, err := c.Register(context.Background(), "Budi", "budi@x.com", "secret")

	require.NoError(t, err)
	require.False(t, outcome.Succeeded())
	require.Equal(t, "Email sudah terdaftar", outcome.Message())
	require.Empty(t, sessions.established)
}

func TestClient_WrappedRejectionIsStillFailure(t *testing.T) {
	err := errors.Join(errors.New("http 409"), &RejectedError{})
	outcome, gotErr := NewClient(&stubBackend{err: err}, &stubSessions{}).Register(context.Background(), "a", "b", "cccccc")

	require.NoError(t, gotErr)
	require.False(t, outcome.Succeeded())
	require.Empty(t, outcome.Message())
}

func TestClient_BackendErrorIsFault(t *testing.T) {
	sessions := &stubSessions{}
	boom := errors.New("dial tcp: connection refused")

	_, err := NewClient(&stubBackend{err: boom}, sessions).Register(context.Background(), "a", "b", "cccccc")

	require.ErrorIs(t, err, boom)
	require.Empty(t, sessions.established)
}

func TestClient_CancelledAfterBackendSkipsSession(t *testing.T) {
	sessions := &stubSessions{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(&stubBackend{grant: Grant{Token: "tok"}}, sessions).Register(ctx, "a", "b", "cccccc")

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, sessions.established)
}

func TestClient_DeadlineDuringEstablishEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions := &stubSessions{afterEstablish: cancel}

	_, err := NewClient(&stubBackend{grant: Grant{Token: "tok"}}, sessions).Register(ctx, "a", "b", "cccccc")

	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, sessions.established, 1)
	require.Equal(t, 1, sessions.ended)
}

func TestClient_EstablishErrorIsFault(t *testing.T) {
	sessions := &stubSessions{err: session.ErrNotInitialized}

	_, err := NewClient(&stubBackend{grant: Grant{Token: "tok"}}, sessions).Register(context.Background(), "a", "b", "cccccc")

	require.ErrorIs(t, err, session.ErrNotInitialized)
}

func TestClaims_Grant(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	claims := &Claims{
		Name:  "Budi",
		Email: "budi@x.com",
		Role:  "contributor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	require.Equal(t, Grant{
		Token:     "tok",
		UserID:    "u-1",
		Name:      "Budi",
		Email:     "budi@x.com",
		Role:      "contributor",
		ExpiresAt: exp,
	}, claims.Grant("tok"))
}

func TestRejectedError_Message(t *testing.T) {
	require.Equal(t, "registration rejected", (&RejectedError{}).Error())
	require.Equal(t, "registration rejected: taken", (&RejectedError{Message: "taken"}).Error())
}
