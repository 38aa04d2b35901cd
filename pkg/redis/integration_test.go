package redis_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir/pkg/redis"
)

func TestStore_Integration(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL is not set")
	}

	ctx := t.Context()
	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redis.Healthcheck(client)(ctx))

	hash := "envir-test-" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, hash) })

	s, err := redis.NewStore(client, hash)
	require.NoError(t, err)

	require.NoError(t, s.Apply(ctx, map[string]string{"A": "1", "B": "2"}))
	require.NoError(t, s.Apply(ctx, map[string]string{"B": "20"}))

	m, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "20"}, m)
}
