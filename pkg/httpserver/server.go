package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Server runs an http.Server until its context is cancelled, SIGINT or
// SIGTERM arrives, or Shutdown is called, then drains it gracefully.
// A Server runs at most once.
type Server struct {
	cfg *config

	mu       sync.Mutex
	srv      *http.Server
	ln       net.Listener
	stopping bool
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Server{cfg: cfg}
}

// Addr returns the bound address while the server runs, and the configured
// one before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	if s.cfg.server != nil && s.cfg.server.Addr != "" {
		return s.cfg.server.Addr
	}
	return s.cfg.addr
}

// Run binds the listener, serves handler and blocks until shutdown.
// Bind failures are returned joined with ErrStart. A nil handler answers 404.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	srv, ln, err := s.listen(handler)
	if err != nil {
		return errors.Join(ErrStart, err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	addr := ln.Addr().String()
	for _, h := range s.cfg.startHooks {
		h(ctx, addr)
	}
	s.cfg.logger.InfoContext(ctx, "http server listening", slog.String("addr", addr))

	var serveErr error
	select {
	case <-sigCtx.Done():
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.cfg.logger.ErrorContext(ctx, "http server shutdown", slog.Any("error", err))
		}
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, serveErr)
	}
	s.cfg.logger.InfoContext(ctx, "http server stopped", slog.String("addr", addr))
	return nil
}

func (s *Server) listen(handler http.Handler) (*http.Server, net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil, nil, ErrAlreadyStarted
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	if srv.ErrorLog == nil {
		srv.ErrorLog = slog.NewLogLogger(cfg.logger.Handler(), slog.LevelWarn)
	}
	srv.Handler = handler

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, nil, err
	}

	s.srv, s.ln = srv, ln
	return srv, ln, nil
}

// Shutdown stops accepting connections and waits for in-flight requests, up
// to the shutdown timeout. It is a no-op before Run and on repeated calls.
// Any error from http.Server.Shutdown is wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	if srv == nil || s.stopping {
		s.mu.Unlock()
		return nil
	}
	s.stopping = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	for _, h := range s.cfg.stopHooks {
		h(ctx)
	}
	if err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
