package proxy

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrymomot/cookieproxy/pkg/clientip"
	"github.com/dmitrymomot/cookieproxy/pkg/httpserver"
	"github.com/dmitrymomot/cookieproxy/pkg/requestid"
)

// RouterOptions wires the HTTP surface of the proxy.
type RouterOptions struct {
	// Forwarder handles every path. When nil no forwarding route is mounted
	// and every request gets 404.
	Forwarder *Forwarder
	Logger    *slog.Logger
	// Resolver stores the client address in the request context.
	// Defaults to clientip.New().
	Resolver *clientip.Resolver
	// HealthPath mounts a health probe when non-empty.
	HealthPath   string
	HealthChecks []func(context.Context) error
}

// Router builds the request pipeline: panic recovery, request id, permissive
// CORS, client address resolution, the optional health probe and finally the
// catch-all forwarding route.
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = clientip.New()
	}

	r := chi.NewRouter()
	r.Use(
		httpserver.Recoverer(log),
		requestid.Middleware,
		cors.Handler(CORSOptions()),
		resolver.Middleware,
	)

	if path := strings.TrimSpace(opts.HealthPath); path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		r.Handle(path, httpserver.HealthCheckHandler(log, opts.HealthChecks...))
	}

	if opts.Forwarder != nil {
		r.Handle("/*", opts.Forwarder)
	}
	return r
}

// CORSOptions allows every origin, method and header, reflecting the
// caller's Origin so credentialed requests work too.
func CORSOptions() cors.Options {
	return cors.Options{
		AllowOriginFunc: func(_ *http.Request, _ string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestid.Header},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
