package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
	"github.com/dmitrymomot/cookieproxy/pkg/redis"
)

var ErrInvalidDriver = errors.New("unknown cookie store driver")

const (
	driverMemory = "memory"
	driverRedis  = "redis"

	pingTimeout = 2 * time.Second
)

// cookieStore bundles the store with its readiness probes and teardown.
type cookieStore struct {
	cookiejar.Store
	checks []func(context.Context) error
	close  func() error
}

func openStore(ctx context.Context, cfg appConfig, log *slog.Logger) (*cookieStore, error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Store.Driver)); driver {
	case "", driverMemory:
		log.Info("cookie store ready",
			slog.String("driver", driverMemory),
			slog.Int("capacity", cfg.Store.Capacity),
			slog.Duration("ttl", cfg.Store.TTL),
		)
		return &cookieStore{
			Store: cookiejar.NewMemoryStoreFromConfig(cfg.Store, cookiejar.WithLogger(log)),
			close: func() error { return nil },
		}, nil

	case driverRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("cookie store ready",
			slog.String("driver", driverRedis),
			slog.Int("capacity", cfg.Store.Capacity),
			slog.Duration("ttl", cfg.Store.TTL),
		)
		return &cookieStore{
			Store:  redis.NewJarStoreFromConfig(client, cfg.Store),
			checks: []func(context.Context) error{redis.Healthcheck(client, pingTimeout)},
			close:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDriver, cfg.Store.Driver)
	}
}
