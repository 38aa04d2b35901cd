package pg_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/pg"
)

func TestNewStore_TableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		table string
		valid bool
	}{
		{table: "envir_variables", valid: true},
		{table: "config.variables", valid: true},
		{table: "", valid: false},
		{table: "variables; DROP TABLE users", valid: false},
		{table: "a.b.c", valid: false},
		{table: "1table", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			t.Parallel()

			_, err := pg.NewStore(nil, tt.table)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, pg.ErrInvalidTableName)
			}
		})
	}
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg, err := envir.From[pg.Config](map[string]string{
		"PG_CONN_URL":           "postgres://localhost:5432/app",
		"PG_HEALTHCHECK_PERIOD": "30s",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/app", cfg.ConnectionString)
	assert.Equal(t, int32(10), cfg.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.HealthCheckPeriod)
	assert.Equal(t, "envir_variables", cfg.Table)

	_, err = envir.From[pg.Config](nil)
	assert.ErrorIs(t, err, envir.ErrMissing)
}

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(t.Context(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(t.Context(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestStore_Integration(t *testing.T) {
	url := os.Getenv("PG_TEST_URL")
	if url == "" {
		t.Skip("PG_TEST_URL is not set")
	}

	ctx := t.Context()
	cfg := pg.Config{
		ConnectionString: url,
		RetryAttempts:    3,
		RetryInterval:    time.Second,
		MigrationsTable:  "envir_schema_migrations",
		Table:            "envir_variables",
	}

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Healthcheck(pool)(ctx))
	require.NoError(t, pg.Migrate(ctx, pool, cfg, slog.New(slog.DiscardHandler)))

	s, err := pg.NewStore(pool, cfg.Table)
	require.NoError(t, err)

	key := "ENVIR_TEST_" + uuid.NewString()
	t.Cleanup(func() { _, _ = pool.Exec(ctx, "DELETE FROM envir_variables WHERE key = $1", key) })

	require.NoError(t, s.Apply(ctx, map[string]string{key: "1"}))
	require.NoError(t, s.Apply(ctx, map[string]string{key: "2"}))

	m, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", m[key])
}
