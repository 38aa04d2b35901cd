package redis_test

import (
	"context"
	"errors"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir/pkg/redis"
)

type MockHashClient struct {
	mock.Mock
}

func (m *MockHashClient) HGetAll(ctx context.Context, key string) *goredis.MapStringStringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*goredis.MapStringStringCmd)
}

func (m *MockHashClient) HSet(ctx context.Context, key string, values ...any) *goredis.IntCmd {
	args := m.Called(ctx, key, values)
	return args.Get(0).(*goredis.IntCmd)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	_, err := redis.NewStore(new(MockHashClient), "")
	assert.ErrorIs(t, err, redis.ErrEmptyHash)
}

func TestStore_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("hash fields", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		client.On("HGetAll", mock.Anything, "envir").
			Return(goredis.NewMapStringStringResult(map[string]string{"APP_HOST": "localhost"}, nil))

		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		m, err := s.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"APP_HOST": "localhost"}, m)
		client.AssertExpectations(t)
	})

	t.Run("missing hash", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		client.On("HGetAll", mock.Anything, "envir").
			Return(goredis.NewMapStringStringResult(nil, nil))

		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		m, err := s.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Empty(t, m)
		assert.NotNil(t, m)
	})

	t.Run("command failure", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		client.On("HGetAll", mock.Anything, "envir").
			Return(goredis.NewMapStringStringResult(nil, errors.New("connection refused")))

		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		_, err = s.Snapshot(context.Background())
		assert.ErrorIs(t, err, redis.ErrSnapshotFailed)
	})
}

func TestStore_Apply(t *testing.T) {
	t.Parallel()

	t.Run("single HSET with sorted pairs", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		client.On("HSet", mock.Anything, "envir", []any{"A", "1", "B", "2"}).
			Return(goredis.NewIntResult(2, nil))

		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		require.NoError(t, s.Apply(context.Background(), map[string]string{"B": "2", "A": "1"}))
		client.AssertExpectations(t)
	})

	t.Run("nothing to write", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		require.NoError(t, s.Apply(context.Background(), nil))
		client.AssertNotCalled(t, "HSet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("command failure", func(t *testing.T) {
		t.Parallel()

		client := new(MockHashClient)
		client.On("HSet", mock.Anything, "envir", mock.Anything).
			Return(goredis.NewIntResult(0, errors.New("READONLY")))

		s, err := redis.NewStore(client, "envir")
		require.NoError(t, err)

		err = s.Apply(context.Background(), map[string]string{"A": "1"})
		assert.ErrorIs(t, err, redis.ErrApplyFailed)
	})
}
