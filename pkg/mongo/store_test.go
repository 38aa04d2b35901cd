package mongo_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/mongo"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongodrv.Cursor, error) {
	args := m.Called(ctx, filter)
	if cur := args.Get(0); cur != nil {
		return cur.(*mongodrv.Cursor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollection) BulkWrite(ctx context.Context, models []mongodrv.WriteModel, opts ...options.Lister[options.BulkWriteOptions]) (*mongodrv.BulkWriteResult, error) {
	args := m.Called(ctx, models)
	if res := args.Get(0); res != nil {
		return res.(*mongodrv.BulkWriteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStore_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("reads every document", func(t *testing.T) {
		t.Parallel()

		cur, err := mongodrv.NewCursorFromDocuments([]any{
			bson.D{{Key: "_id", Value: "APP_NAME"}, {Key: "value", Value: "envir"}},
			bson.D{{Key: "_id", Value: "APP_PORT"}, {Key: "value", Value: "8080"}},
		}, nil, nil)
		require.NoError(t, err)

		coll := &MockCollection{}
		coll.On("Find", mock.Anything, bson.D{}).Return(cur, nil)

		got, err := mongo.NewStore(coll).Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"APP_NAME": "envir", "APP_PORT": "8080"}, got)
		coll.AssertExpectations(t)
	})

	t.Run("wraps find errors", func(t *testing.T) {
		t.Parallel()

		coll := &MockCollection{}
		coll.On("Find", mock.Anything, bson.D{}).Return(nil, errors.New("boom"))

		_, err := mongo.NewStore(coll).Snapshot(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, mongo.ErrSnapshotFailed)
	})
}

func TestStore_Apply(t *testing.T) {
	t.Parallel()

	t.Run("upserts sorted entries", func(t *testing.T) {
		t.Parallel()

		coll := &MockCollection{}
		coll.On("BulkWrite", mock.Anything, mock.MatchedBy(func(models []mongodrv.WriteModel) bool {
			if len(models) != 2 {
				return false
			}
			first, ok := models[0].(*mongodrv.UpdateOneModel)
			if !ok || first.Upsert == nil || !*first.Upsert {
				return false
			}
			return assert.ObjectsAreEqual(bson.D{{Key: "_id", Value: "A"}}, first.Filter) &&
				assert.ObjectsAreEqual(bson.D{{Key: "$set", Value: bson.D{{Key: "value", Value: "1"}}}}, first.Update)
		})).Return(&mongodrv.BulkWriteResult{UpsertedCount: 2}, nil)

		err := mongo.NewStore(coll).Apply(context.Background(), map[string]string{"B": "2", "A": "1"})
		require.NoError(t, err)
		coll.AssertExpectations(t)
	})

	t.Run("no entries is a no-op", func(t *testing.T) {
		t.Parallel()

		coll := &MockCollection{}
		require.NoError(t, mongo.NewStore(coll).Apply(context.Background(), nil))
		coll.AssertNotCalled(t, "BulkWrite", mock.Anything, mock.Anything)
	})

	t.Run("wraps write errors", func(t *testing.T) {
		t.Parallel()

		coll := &MockCollection{}
		coll.On("BulkWrite", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		err := mongo.NewStore(coll).Apply(context.Background(), map[string]string{"A": "1"})
		assert.ErrorIs(t, err, mongo.ErrApplyFailed)
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg, err := envir.From[mongo.Config](map[string]string{
		"MONGODB_URL":      "mongodb://localhost:27017",
		"MONGODB_DATABASE": "app",
	})
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.ConnectionURL)
	assert.Equal(t, "app", cfg.Database)
	assert.Equal(t, "variables", cfg.Collection)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, uint64(100), cfg.MaxPoolSize)
	assert.True(t, cfg.RetryWrites)
}

func TestNew_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
}

func TestStore_Integration(t *testing.T) {
	url := os.Getenv("MONGODB_TEST_URL")
	if url == "" {
		t.Skip("MONGODB_TEST_URL not set")
	}

	ctx := context.Background()
	client, err := mongo.New(ctx, mongo.Config{
		ConnectionURL:  url,
		ConnectTimeout: 5 * time.Second,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, mongo.Healthcheck(client)(ctx))

	coll := client.Database("envir_test").Collection("variables_" + time.Now().Format("150405"))
	t.Cleanup(func() { _ = coll.Drop(context.Background()) })

	s := mongo.NewStore(coll)
	require.NoError(t, s.Apply(ctx, map[string]string{"A": "1", "B": "2"}))
	require.NoError(t, s.Apply(ctx, map[string]string{"B": "3"}))

	got, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "3"}, got)
}
