// Package redis connects to Redis and provides a Redis-backed
// cookiejar.Store for deployments running more than one proxy replica.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which pings the server with retries before handing out a client.
//   - JarStore, a cookiejar.Store keeping each client's jar in a Redis list
//     with a write-refreshed expiry, plus a sorted-set recency index that
//     enforces the identity capacity.
//   - Healthcheck, for readiness probes.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewJarStore(client,
//		redis.WithPrefix("cookieproxy:"),
//		redis.WithCapacity(1000),
//		redis.WithTTL(3*time.Minute),
//	)
//
// # Consistency
//
// Appends are atomic (MULTI/EXEC). Capacity eviction runs after each write and
// may briefly overshoot the bound when several replicas write concurrently.
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrCorruptJar, ...) wrap the underlying
// go-redis errors using errors.Join.
package redis
