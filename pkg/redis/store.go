package redis

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/redis/go-redis/v9"
)

// HashClient is the subset of the go-redis client used by Store.
// *redis.Client, *redis.ClusterClient and redis.UniversalClient satisfy it.
type HashClient interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// Store keeps entries as the fields of a single Redis hash.
type Store struct {
	client HashClient
	hash   string
}

// NewStore returns a store over the hash named hash.
func NewStore(client HashClient, hash string) (*Store, error) {
	if hash == "" {
		return nil, ErrEmptyHash
	}
	return &Store{client: client, hash: hash}, nil
}

// Snapshot returns all fields of the hash. A missing hash is an empty store.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	m, err := s.client.HGetAll(ctx, s.hash).Result()
	if err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}
	if m == nil {
		m = make(map[string]string)
	}
	return m, nil
}

// Apply writes entries with a single HSET command, so they land atomically.
func (s *Store) Apply(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	args := make([]any, 0, len(entries)*2)
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		args = append(args, k, entries[k])
	}

	if err := s.client.HSet(ctx, s.hash, args...).Err(); err != nil {
		return errors.Join(ErrApplyFailed, err)
	}
	return nil
}
