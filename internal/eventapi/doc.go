// Package eventapi exposes the thin HTTP surface spec §6 describes: seeding
// a conversation, delivering a turn, approving/rejecting HIL tasks, listing
// pending tasks, and the deposit-paid shortcut, plus unauthenticated
// health/docs/root probes.
//
// Grounded on internal/daemon/api_server.go's mux-based server shape
// (net/http.ServeMux, a hand-rolled writeJSON/writeError pair, graceful
// Shutdown on context cancellation) and internal/daemon/auth.go's bearer
// middleware, generalized here to the two schemes spec §6 names
// (AUTH_MODE "bearer" vs "api_key", also accepted as "api-key") plus
// X-Team-Id tenant binding (see tenantID). The X-Manager-Id header is not
// read.
package eventapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"eventkernel/internal/config"
	"eventkernel/internal/logging"
	"eventkernel/internal/store"
	"eventkernel/internal/turn"
)

// Server is the HTTP front door over a turn.Runner and its backing Store.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	runner *turn.Runner
	logger *slog.Logger

	listener   net.Listener
	httpServer *http.Server
}

// New builds a Server wired to runner for turn handling and st for the
// task-management endpoints that need direct document access.
func New(cfg *config.Config, st *store.Store, runner *turn.Runner, logger *slog.Logger) *Server {
	s := &Server{cfg: cfg, store: st, runner: runner, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.withAuth(s.handleRoot, true))
	mux.HandleFunc("/health", s.withAuth(s.handleHealth, true))
	mux.HandleFunc("/docs", s.withAuth(s.handleDocs, true))
	mux.HandleFunc("/api/start-conversation", s.withAuth(s.handleStartConversation, false))
	mux.HandleFunc("/api/send-message", s.withAuth(s.handleSendMessage, false))
	mux.HandleFunc("/api/tasks/pending", s.withAuth(s.handlePendingTasks, false))
	mux.HandleFunc("/api/tasks/", s.withAuth(s.handleTaskDecision, false))
	mux.HandleFunc("/api/events/", s.withAuth(s.handlePayDeposit, false))

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start binds the configured address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	bind := "127.0.0.1:8787"
	if s.cfg != nil && strings.TrimSpace(s.cfg.APIBind) != "" {
		bind = s.cfg.APIBind
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("eventapi listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("eventapi server error", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}()

	s.log().Info("eventapi server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down immediately, for callers outside a context tree.
func (s *Server) Stop() {
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}

// ServeHTTP lets a Server be used directly as an http.Handler, e.g. in tests
// or behind an external listener the caller manages itself.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "eventapi"))
	}
	return logging.NewNop()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// tenantID resolves the per-tenant document key a request binds to (spec
// §6's "Tenant routing"): the X-Team-Id header when TENANT_HEADER_ENABLED is
// set, otherwise the configured default.
func (s *Server) tenantID(r *http.Request) string {
	if s.cfg != nil && s.cfg.TenantHeaderEnabled {
		if team := strings.TrimSpace(r.Header.Get("X-Team-Id")); team != "" {
			return team
		}
	}
	if s.cfg != nil && s.cfg.DefaultTenantID != "" {
		return s.cfg.DefaultTenantID
	}
	return "default"
}
