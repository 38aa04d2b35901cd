package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/environment"
	"github.com/dmitrymomot/envir/pkg/logger"
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

func TestEnvironmentOptions(t *testing.T) {
	dev := logger.New(logger.WithDevelopment("svc"))
	prod := logger.New(logger.WithProduction("svc"))
	require.NotNil(t, dev)
	require.NotNil(t, prod)
}

func TestWithExtractors(t *testing.T) {
	buf := &bytes.Buffer{}
	type key string
	k := key("id")
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v := ctx.Value(k); v != nil {
			return slog.String("id", v.(string)), true
		}
		return slog.Attr{}, false
	}
	log := logger.New(
		logger.WithProduction("svc"),
		logger.WithOutput(buf),
		logger.WithContextExtractors(extractor),
	)
	ctx := context.WithValue(context.Background(), k, "123")
	log.InfoContext(ctx, "msg")
	var entry map[string]any
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, "123", entry["id"])
}

func TestWithEnvironment(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithEnvironment(environment.Environment("stage"), "svc"),
		logger.WithOutput(buf),
	)
	log.Debug("hidden")
	log.Info("msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "msg", entry["msg"])
}

func TestFromEnv(t *testing.T) {
	t.Run("environment preset", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SERVICE_NAME", "api")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")

		buf := &bytes.Buffer{}
		log, err := logger.FromEnv(logger.WithOutput(buf))
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("msg")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "api", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("explicit level and format", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "TEXT")

		buf := &bytes.Buffer{}
		log, err := logger.FromEnv(logger.WithOutput(buf))
		require.NoError(t, err)

		log.Debug("visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := logger.FromEnv()
		require.Error(t, err)
		assert.ErrorIs(t, err, envir.ErrParse)
	})
}

func TestConfig_Options(t *testing.T) {
	cfg, err := envir.From[logger.Config](map[string]string{"LOG_LEVEL": "warn"})
	require.NoError(t, err)
	assert.Equal(t, environment.Development, cfg.Env)
	assert.Equal(t, "envir", cfg.Service)
	require.NotNil(t, cfg.Level)
	assert.Equal(t, slog.LevelWarn, *cfg.Level)
	assert.Nil(t, cfg.Format)
	assert.Len(t, cfg.Options(), 2)
}
