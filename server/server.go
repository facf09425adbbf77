// Package server wires the executor into an A2A JSON-RPC HTTP server.
//
// Routes:
//
//	POST /                              A2A JSON-RPC endpoint
//	GET  /.well-known/agent-card.json   agent card
//	GET  /health                        liveness
//	GET  /metrics                       Prometheus metrics, when enabled
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AgentCardPath is where the agent card is served.
const AgentCardPath = "/.well-known/agent-card.json"

// Server serves one agent executor over HTTP.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	handler http.Handler
}

// New builds the server's routes around exec.
func New(cfg Config, exec a2asrv.AgentExecutor) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+AgentCardPath, a2asrv.NewStaticAgentCardHandler(NewAgentCard(cfg)))
	mux.HandleFunc("GET /health", healthHandler)
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("POST /", a2asrv.NewJSONRPCHandler(a2asrv.NewHandler(exec)))

	return &Server{
		cfg:     cfg,
		logger:  logger,
		handler: corsMiddleware(requestLogger(logger, mux)),
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // SSE streams and long completions need no write timeout
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			"address", ln.Addr().String(),
			"card_url", s.cfg.PublicURL(),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
