package main

import (
	"github.com/dmitrymomot/cookieproxy/pkg/clientip"
	"github.com/dmitrymomot/cookieproxy/pkg/cookiejar"
	"github.com/dmitrymomot/cookieproxy/pkg/httpserver"
	"github.com/dmitrymomot/cookieproxy/pkg/logger"
	"github.com/dmitrymomot/cookieproxy/pkg/redis"
)

type appConfig struct {
	Origin     string `env:"ORIGINAL_SERVER_URL"` // Origin is the base URL every request is forwarded to. Empty disables forwarding.
	HealthPath string `env:"HEALTH_PATH"`         // HealthPath mounts a health probe when set.

	HTTP     httpserver.Config
	Log      logger.Config
	Store    cookiejar.Config
	ClientIP clientip.Config
	Redis    redis.Config
}
