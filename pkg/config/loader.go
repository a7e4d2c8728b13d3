package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	files       []string
	environment map[string]string
}

// WithEnvFiles loads the given dotenv files instead of the default ".env".
// Unlike the default file, explicitly named files must exist.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from m instead of the process environment. No
// dotenv file is read in that case.
func WithEnvironment(m map[string]string) Option {
	return func(o *loadOptions) { o.environment = m }
}

// Load populates v from environment variables according to its `env` struct
// tags. Nested structs are parsed recursively, which lets each package own a
// Config type that the binary composes.
//
// Before parsing, the default ".env" file is loaded if present. Variables
// already set in the process environment win over dotenv values.
//
// Example:
//
//	type ProxyConfig struct {
//		Origin string        `env:"ORIGINAL_SERVER_URL"`
//		HTTP   httpserver.Config
//	}
//
//	var cfg ProxyConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.environment == nil {
		if err := loadEnvFiles(o.files); err != nil {
			return err
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Environment: o.environment}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			// The default file is optional.
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
