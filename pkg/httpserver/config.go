package httpserver

import (
	"strconv"
	"time"
)

type Config struct {
	Port            int           `env:"PORT" envDefault:"3000"`                // Port is used when Addr is empty.
	Addr            string        `env:"HTTP_ADDR"`                             // Addr overrides Port with a full listen address such as "127.0.0.1:8080".
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`    // ReadTimeout is the maximum duration for reading the entire request.
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"0s"`    // WriteTimeout bounds response writes; zero leaves slow origins unbounded.
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`   // IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"` // ShutdownTimeout is the time allowed for graceful shutdown.
}

// ListenAddr returns Addr when set, otherwise ":<Port>".
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	if c.Port > 0 {
		return ":" + strconv.Itoa(c.Port)
	}
	return ""
}

// NewFromConfig creates a new Server from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	configOpts := make([]Option, 0, 5)

	if addr := cfg.ListenAddr(); addr != "" {
		configOpts = append(configOpts, WithAddr(addr))
	}
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
