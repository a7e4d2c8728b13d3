package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookieproxy/pkg/logger"
)

func TestWithDevelopment(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithDevelopment("svc"),
		logger.WithOutput(buf),
	)
	require.NotNil(t, log)
	log.Debug("msg")
	output := buf.String()
	assert.Contains(t, output, "DEBUG")
	assert.Contains(t, output, "service=svc")
}

func TestWithProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithProduction("svc"),
		logger.WithOutput(buf),
	)
	require.NotNil(t, log)
	log.Info("msg")
	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, "svc", entry["service"])
}

func TestNewFromConfig(t *testing.T) {
	t.Run("production config emits json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.NewFromConfig(logger.Config{Env: "prod", Service: "cookieproxy"}, logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("shown")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "cookieproxy", entry["service"])
		assert.Equal(t, logger.Production, entry["env"])
	})

	t.Run("level override", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.NewFromConfig(logger.Config{Env: "production", Service: "svc", Level: "debug"}, logger.WithOutput(buf))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("unknown env falls back to development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.NewFromConfig(logger.Config{Env: "qa", Service: "svc"}, logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("staging", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("stage", "svc"), logger.WithOutput(buf))
		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, logger.Staging, entry["env"])
	})
}

func TestWithLevelName(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevelName("WARN"))
	log.Info("dropped")
	log.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.Panics(t, func() { logger.WithLevelName("loud") })
}
