package environment_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want environment.Environment
	}{
		{"development", environment.Development},
		{"dev", environment.Development},
		{"local", environment.Development},
		{"PROD", environment.Production},
		{" production ", environment.Production},
		{"stage", environment.Staging},
		{"staging", environment.Staging},
		{"preview", environment.Environment("preview")},
		{"", environment.Environment("")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, environment.Parse(tt.in))
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		env, err := envir.From[environment.Config](map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, environment.Development, env.Env)
	})

	t.Run("alias", func(t *testing.T) {
		t.Setenv("APP_ENV", "prod")
		env, err := environment.FromEnv()
		require.NoError(t, err)
		assert.Equal(t, environment.Production, env)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		env   environment.Environment
		isDev bool
		isStg bool
		isPrd bool
	}{
		{"development", environment.Development, true, false, false},
		{"staging", environment.Staging, false, true, false},
		{"production", environment.Production, false, false, true},
		{"custom", environment.Environment("custom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := environment.WithContext(context.Background(), tt.env)

			assert.Equal(t, tt.env, environment.FromContext(ctx))
			assert.Equal(t, tt.isDev, environment.IsDevelopment(ctx))
			assert.Equal(t, tt.isStg, environment.IsStaging(ctx))
			assert.Equal(t, tt.isPrd, environment.IsProduction(ctx))
		})
	}

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, environment.Environment(""), environment.FromContext(context.Background()))
		assert.False(t, environment.IsProduction(context.Background()))
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	extract := environment.LoggerExtractor()

	attr, ok := extract(environment.WithContext(context.Background(), environment.Staging))
	require.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "staging", attr.Value.String())

	attr, ok = extract(context.Background())
	assert.False(t, ok)
	assert.True(t, attr.Equal(slog.Attr{}))
}
