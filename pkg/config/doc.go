// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - An optional ".env" file in the working directory (or explicitly named
//     files) is loaded first; real environment variables take precedence.
//   - The environment is then parsed into any struct using `env` field tags,
//     recursing into nested structs.
//
// Each package exposes its own Config struct (httpserver.Config,
// cookiejar.Config, clientip.Config, ...) and the binary composes them:
//
//	type appConfig struct {
//		Origin string `env:"ORIGINAL_SERVER_URL"`
//		HTTP   httpserver.Config
//		Store  cookiejar.Config
//	}
//
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("config: %v", err)
//	}
//
// Tests can bypass the process environment entirely:
//
//	config.Load(&cfg, config.WithEnvironment(map[string]string{"PORT": "8080"}))
//
// All errors wrap one of the sentinel values in errors.go; use errors.Is.
package config
