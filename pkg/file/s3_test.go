package file_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envir/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func objectBody(s string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s))}
}

func isObject(bucket, key string) any {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return *in.Bucket == bucket && *in.Key == key
	})
}

func newS3(t *testing.T, client file.S3Client, key string) *file.S3 {
	t.Helper()

	s, err := file.NewS3(context.Background(), file.S3Config{
		Bucket: "configs",
		Key:    key,
		Region: "us-east-1",
	}, file.WithS3Client(client), file.WithS3Timeout(time.Second))
	require.NoError(t, err)
	return s
}

func TestNewS3(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		s, err := file.NewS3(context.Background(), file.S3Config{
			Bucket:      "configs",
			Key:         "app.env",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()

		s, err := file.NewS3(context.Background(), file.S3Config{
			Bucket:         "configs",
			Key:            "app.env",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("missing bucket or key", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewS3(context.Background(), file.S3Config{Key: "app.env", Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)

		_, err = file.NewS3(context.Background(), file.S3Config{Bucket: "configs", Region: "us-east-1"})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestS3_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("decodes object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, isObject("configs", "prod.yaml"), mock.Anything).
			Return(objectBody("HOST: db.internal\nPORT: 5432\n"), nil)

		m, err := newS3(t, client, "prod.yaml").Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"HOST": "db.internal", "PORT": "5432"}, m)
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})

		_, err := newS3(t, client, "prod.env").Snapshot(context.Background())
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})

		_, err := newS3(t, client, "prod.env").Snapshot(context.Background())
		assert.ErrorIs(t, err, file.ErrAccessDenied)
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchBucket{})

		_, err := newS3(t, client, "prod.env").Snapshot(context.Background())
		assert.ErrorIs(t, err, file.ErrBucketNotFound)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, context.Canceled)

		_, err := newS3(t, client, "prod.env").Snapshot(context.Background())
		assert.ErrorIs(t, err, file.ErrOperationCanceled)
	})
}

func TestS3_Apply(t *testing.T) {
	t.Parallel()

	t.Run("merges into existing object", func(t *testing.T) {
		t.Parallel()

		var uploaded string
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(objectBody(`{"A": "1", "B": "2"}`), nil)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				in := args.Get(1).(*s3.PutObjectInput)
				assert.Equal(t, "configs", *in.Bucket)
				assert.Equal(t, "app.json", *in.Key)
				assert.Equal(t, "application/json", *in.ContentType)
				b, err := io.ReadAll(in.Body)
				require.NoError(t, err)
				uploaded = string(b)
			}).
			Return(&s3.PutObjectOutput{}, nil)

		err := newS3(t, client, "app.json").Apply(context.Background(), map[string]string{"B": "20", "C": "3"})
		require.NoError(t, err)

		m, err := file.Decode(file.FormatJSON, []byte(uploaded))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1", "B": "20", "C": "3"}, m)
		client.AssertExpectations(t)
	})

	t.Run("creates missing object", func(t *testing.T) {
		t.Parallel()

		var uploaded string
		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				b, _ := io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
				uploaded = string(b)
			}).
			Return(&s3.PutObjectOutput{}, nil)

		err := newS3(t, client, "app.env").Apply(context.Background(), map[string]string{"A": "1"})
		require.NoError(t, err)
		assert.Equal(t, "A=\"1\"\n", uploaded)
	})

	t.Run("upload failure", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &types.NoSuchKey{})
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset"))

		err := newS3(t, client, "app.env").Apply(context.Background(), map[string]string{"A": "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload object")
	})

	t.Run("read failure aborts", func(t *testing.T) {
		t.Parallel()

		client := new(MockS3Client)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &smithy.GenericAPIError{Code: "SlowDown"})

		err := newS3(t, client, "app.env").Apply(context.Background(), map[string]string{"A": "1"})
		assert.ErrorIs(t, err, file.ErrServiceUnavailable)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})
}
