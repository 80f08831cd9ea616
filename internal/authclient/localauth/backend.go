// Package localauth is an account backend on a local SQLite database. It
// backs both the offline mode of the client and the auth-server command.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/enernova/enernova/internal/authclient"
	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
)

// Message keys for rejections.
const (
	KeyEmailTaken     = "auth.error.email_taken"
	KeyInvalidRequest = "auth.error.invalid_request"
)

// Backend registers accounts locally and signs HS256 session tokens.
type Backend struct {
	cfg      Config
	accounts *accountRepository
	tr       registration.Translator
	now      func() time.Time
}

var _ authclient.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithTranslator sets the source of rejection messages.
func WithTranslator(tr registration.Translator) Option {
	return func(b *Backend) { b.tr = tr }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// New returns a backend storing accounts in db.
func New(db *DB, cfg Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Backend{
		cfg:      cfg,
		accounts: newAccountRepository(db.Connection()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.tr == nil {
		b.tr = i18n.NewLocalizer(i18n.BaseLocale)
	}
	return b, nil
}

// Register creates the account and returns a signed session grant.
func (b *Backend) Register(ctx context.Context, reg authclient.Registration) (authclient.Grant, error) {
	name := strings.TrimSpace(reg.Name)
	email := strings.TrimSpace(reg.Email)
	if name == "" || email == "" || len(reg.Password) == 0 {
		return authclient.Grant{}, &authclient.RejectedError{Code: authclient.CodeInvalid, Message: b.tr.T(KeyInvalidRequest)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), b.cfg.BcryptCost)
	if err != nil {
		return authclient.Grant{}, fmt.Errorf("hash password: %w", err)
	}

	now := b.now().UTC()
	account := Account{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      b.cfg.DefaultRole,
		CreatedAt: now,
	}
	if err := b.accounts.Create(ctx, account, hash); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			log.Info(log.CatAuth, "duplicate registration rejected")
			return authclient.Grant{}, &authclient.RejectedError{Code: authclient.CodeConflict, Message: b.tr.T(KeyEmailTaken)}
		}
		return authclient.Grant{}, err
	}

	token, claims, err := b.issue(account, now)
	if err != nil {
		return authclient.Grant{}, err
	}
	log.Info(log.CatAuth, "account created", "user_id", account.ID, "role", account.Role)
	return claims.Grant(token), nil
}

func (b *Backend) issue(a Account, now time.Time) (string, *authclient.Claims, error) {
	claims := &authclient.Claims{
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    b.cfg.Issuer,
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.cfg.TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(b.cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks a token issued by this backend and returns its claims.
func (b *Backend) Verify(token string) (*authclient.Claims, error) {
	claims := &authclient.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(b.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(b.cfg.Issuer),
		jwt.WithTimeFunc(b.now),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	return claims, nil
}

// Accounts lists stored accounts, oldest first.
func (b *Backend) Accounts(ctx context.Context) ([]Account, error) {
	return b.accounts.List(ctx)
}
