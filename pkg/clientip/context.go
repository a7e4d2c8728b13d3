package clientip

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/cookieproxy/pkg/logger"
)

// clientIPContextKey is the key for storing client IP in context
type clientIPContextKey struct{}

// SetIPToContext stores client IP in context. Empty values are not stored.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext retrieves client IP from context.
func GetIPFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok && ip != ""
}

// LoggerExtractor returns a logger context extractor adding "client_ip".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip, ok := GetIPFromContext(ctx); ok {
			return logger.ClientIP(ip), true
		}
		return slog.Attr{}, false
	}
}
