// Package httpauth registers accounts against a remote auth service.
//
// Wire format:
//
//	POST {base}/auth/register  {"name","email","password"}
//	2xx  {"token": "<jwt>"}
//	4xx  {"error": "<message for the user>"}
//
// The token's signature is checked by the service that issued it; this
// client only reads the claims to build the session.
package httpauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enernova/enernova/internal/authclient"
	"github.com/enernova/enernova/internal/log"
)

// RegisterPath is the registration endpoint relative to the base URL.
const RegisterPath = "/auth/register"

const maxBodyBytes = 1 << 20

// TokenResponse is the success body.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Backend is an authclient.Backend speaking HTTP.
type Backend struct {
	endpoint string
	client   *http.Client
	parser   *jwt.Parser
}

var _ authclient.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) { b.client = c }
}

// New returns a backend for the service at baseURL.
func New(baseURL string, opts ...Option) (*Backend, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse auth base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("auth base url %q: scheme must be http or https", baseURL)
	}

	b := &Backend{
		endpoint: u.String() + RegisterPath,
		client:   &http.Client{Timeout: 30 * time.Second},
		parser:   jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Register posts reg to the service.
func (b *Backend) Register(ctx context.Context, reg authclient.Registration) (authclient.Grant, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return authclient.Grant{}, fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return authclient.Grant{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug(log.CatAuth, "posting registration", "url", b.endpoint)
	resp, err := b.client.Do(req)
	if err != nil {
		return authclient.Grant{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return authclient.Grant{}, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return b.grant(raw)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var e ErrorResponse
		if err := json.Unmarshal(raw, &e); err != nil {
			log.Debug(log.CatAuth, "rejection body not json", "status", resp.StatusCode)
		}
		code := authclient.CodeInvalid
		if resp.StatusCode == http.StatusConflict {
			code = authclient.CodeConflict
		}
		return authclient.Grant{}, &authclient.RejectedError{Code: code, Message: strings.TrimSpace(e.Error)}
	default:
		return authclient.Grant{}, fmt.Errorf("auth service returned %s", resp.Status)
	}
}

func (b *Backend) grant(raw []byte) (authclient.Grant, error) {
	var tr TokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return authclient.Grant{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.Token == "" {
		return authclient.Grant{}, errors.New("token response missing token")
	}

	claims := &authclient.Claims{}
	if _, _, err := b.parser.ParseUnverified(tr.Token, claims); err != nil {
		return authclient.Grant{}, fmt.Errorf("failed to read token claims: %w", err)
	}
	if claims.Subject == "" {
		return authclient.Grant{}, errors.New("token has no subject")
	}
	return claims.Grant(tr.Token), nil
}
