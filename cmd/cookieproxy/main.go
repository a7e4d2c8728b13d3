// Command cookieproxy is a reverse proxy that keeps a cookie jar per client
// IP address on behalf of a single origin server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/cookieproxy/pkg/clientip"
	"github.com/dmitrymomot/cookieproxy/pkg/config"
	"github.com/dmitrymomot/cookieproxy/pkg/httpserver"
	"github.com/dmitrymomot/cookieproxy/pkg/logger"
	"github.com/dmitrymomot/cookieproxy/pkg/proxy"
	"github.com/dmitrymomot/cookieproxy/pkg/requestid"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log,
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("cookieproxy stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Warn("closing cookie store", logger.Error(err))
		}
	}()

	fwd, err := newForwarder(cfg, store, log)
	if err != nil {
		return err
	}

	if cfg.ClientIP.TrustHeaders && len(cfg.ClientIP.Headers) > 0 {
		log.Warn("client identity is read from request headers, only safe behind a proxy that overwrites them",
			slog.Any("headers", cfg.ClientIP.Headers),
		)
	}

	handler := proxy.Router(proxy.RouterOptions{
		Forwarder:    fwd,
		Logger:       log,
		Resolver:     clientip.NewFromConfig(cfg.ClientIP),
		HealthPath:   cfg.HealthPath,
		HealthChecks: store.checks,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, handler)
}

// newForwarder returns nil without an error when no origin is configured:
// the proxy then serves 404 for every path.
func newForwarder(cfg appConfig, store *cookieStore, log *slog.Logger) (*proxy.Forwarder, error) {
	if cfg.Origin == "" {
		log.Warn("ORIGINAL_SERVER_URL is not set, no forwarding route is mounted and every request gets 404")
		return nil, nil
	}

	origin, err := proxy.ParseOrigin(cfg.Origin)
	if err != nil {
		return nil, err
	}
	log.Info("forwarding to origin", logger.Origin(origin.String()))

	return proxy.New(origin, store, proxy.WithLogger(log))
}
