// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable server timeouts, panic recovery, health-check
// handlers and structured logging via slog.
//
// The core type is Server which owns an *http.Server and augments it with:
//
//   - Graceful Shutdown: Run blocks until the context is cancelled or an
//     interrupt/TERM signal is received and then shuts the server down using
//     http.Server.Shutdown with a configurable deadline.
//
//   - Functional Options: construction is done through New or NewFromConfig
//     together with Option helpers such as WithAddr, WithReadTimeout and
//     WithLogger.
//
//   - Hooks: WithStartHook and WithStopHook let callers execute side-effects
//     around the server life-cycle.
//
// Two handlers live alongside the server. HealthCheckHandler serves liveness
// and readiness probes, and Recoverer converts handler panics into a generic
// 500 "Server error" response while logging the panic and its stack.
//
// # Configuration
//
// Config is read from the environment. PORT selects the listen port (3000 by
// default) and HTTP_ADDR, when set, replaces it with a full address.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(httpserver.Recoverer(log))
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Errors returned by Run and Shutdown wrap ErrStart and ErrShutdown so they
// can be inspected with errors.Is.
package httpserver
