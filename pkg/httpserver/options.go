package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// StartHook runs once the listener is bound, with the actual listen address.
type StartHook func(ctx context.Context, addr string)

// StopHook runs after graceful shutdown has finished.
type StopHook func(ctx context.Context)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	startHooks      []StartHook
	stopHooks       []StopHook
}

func defaultConfig() *config {
	return &config{
		addr:            ":3000",
		readTimeout:     30 * time.Second,
		idleTimeout:     120 * time.Second,
		shutdownTimeout: 5 * time.Second,
		logger:          slog.New(slog.DiscardHandler),
	}
}

func mustBePositive(name string, d time.Duration) {
	if d <= 0 {
		panic(name + ": duration must be > 0")
	}
}

// WithAddr sets the listen address, e.g. ":3000" or "127.0.0.1:0".
func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	mustBePositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout bounds writing the response. Unset by default so that
// slow origin responses can still be relayed.
func WithWriteTimeout(d time.Duration) Option {
	mustBePositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustBePositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout sets the time allowed for in-flight requests to finish.
func WithShutdownTimeout(d time.Duration) Option {
	mustBePositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithServer uses srv instead of a fresh http.Server. Fields already set on
// srv win over options; Handler is always replaced.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("WithServer: nil server")
	}
	return func(c *config) { c.server = srv }
}

// WithLogger sets the logger for life-cycle events and net/http errors.
// A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithStartHook(h StartHook) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

func WithStopHook(h StopHook) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}
