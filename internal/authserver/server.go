// Package authserver exposes an account backend over HTTP using the wire
// format the httpauth client speaks.
package authserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/enernova/enernova/internal/authclient"
	"github.com/enernova/enernova/internal/authclient/httpauth"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
)

// Message keys for request-level errors.
const keyInvalidRequest = "auth.error.invalid_request"

const maxRequestBytes = 1 << 16

// Verifier checks issued tokens.
type Verifier interface {
	Verify(token string) (*authclient.Claims, error)
}

// Handler serves the auth endpoints.
type Handler struct {
	backend  authclient.Backend
	verifier Verifier
	tr       registration.Translator
}

// HandlerConfig configures the handler.
type HandlerConfig struct {
	// Backend creates accounts (required).
	Backend authclient.Backend
	// Verifier enables GET /auth/session when set.
	Verifier Verifier
	// Translator renders request errors (required).
	Translator registration.Translator
}

// NewHandler creates a handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{backend: cfg.Backend, verifier: cfg.Verifier, tr: cfg.Translator}
}

// SessionResponse is the body of GET /auth/session.
type SessionResponse struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Routes returns an http.Handler with all routes registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+httpauth.RegisterPath, h.Register)
	if h.verifier != nil {
		mux.HandleFunc("GET /auth/session", h.Session)
	}
	mux.HandleFunc("GET /health", h.Health)
	return mux
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg authclient.Registration
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reg); err != nil {
		log.Debug(log.CatServer, "invalid registration body", "error", err)
		h.writeError(w, http.StatusBadRequest, h.tr.T(keyInvalidRequest))
		return
	}

	grant, err := h.backend.Register(r.Context(), reg)
	if err != nil {
		var rejected *authclient.RejectedError
		if errors.As(err, &rejected) {
			status := http.StatusConflict
			if rejected.Code == authclient.CodeInvalid {
				status = http.StatusBadRequest
			}
			h.writeError(w, status, rejected.Message)
			return
		}
		log.ErrorErr(log.CatServer, "registration failed", err)
		h.writeError(w, http.StatusInternalServerError, "")
		return
	}

	log.Info(log.CatServer, "account registered", "user_id", grant.UserID)
	h.writeJSON(w, http.StatusCreated, httpauth.TokenResponse{Token: grant.Token})
}

// Session handles GET /auth/session with a bearer token.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		h.writeError(w, http.StatusUnauthorized, "")
		return
	}
	claims, err := h.verifier.Verify(token)
	if err != nil {
		log.Debug(log.CatServer, "token rejected", "error", err)
		h.writeError(w, http.StatusUnauthorized, "")
		return
	}
	grant := claims.Grant(token)
	h.writeJSON(w, http.StatusOK, SessionResponse{
		UserID:    grant.UserID,
		Name:      grant.Name,
		Email:     grant.Email,
		Role:      grant.Role,
		ExpiresAt: grant.ExpiresAt,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error(log.CatServer, "Failed to encode JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, httpauth.ErrorResponse{Error: message})
}

// Server wraps the Handler with an http.Server for lifecycle management.
type Server struct {
	server   *http.Server
	listener net.Listener
	port     int
}

// NewServer listens on addr and serves handler, usually Handler.Routes
// wrapped in middleware. Port 0 picks a free port; see Port.
func NewServer(addr string, handler http.Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	port := 0
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	return &Server{
		listener: listener,
		port:     port,
		server: &http.Server{
			Handler:           handler,
			ReadTimeout:       30 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}, nil
}

// Start serves until Stop. It returns nil after a graceful stop.
func (s *Server) Start() error {
	log.Info(log.CatServer, "Starting auth server", "addr", s.listener.Addr().String())
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	log.Info(log.CatServer, "Stopping auth server")
	return s.server.Shutdown(ctx)
}

// Port returns the bound port.
func (s *Server) Port() int {
	return s.port
}

// URL returns the base URL clients should use.
func (s *Server) URL() string {
	return "http://" + s.listener.Addr().String()
}
