package store

import (
	"context"
	"errors"
)

// Source returns a point-in-time copy of all entries it holds.
// Callers may modify the returned map.
type Source interface {
	Snapshot(ctx context.Context) (map[string]string, error)
}

// Sink writes entries, replacing existing values with the same keys.
// Keys not present in entries are left alone.
type Sink interface {
	Apply(ctx context.Context, entries map[string]string) error
}

// Store is both a Source and a Sink.
type Store interface {
	Source
	Sink
}

var (
	// ErrSnapshot is returned when a source cannot be read.
	ErrSnapshot = errors.New("failed to read store snapshot")

	// ErrApply is returned when entries cannot be written to a sink.
	ErrApply = errors.New("failed to apply entries to store")
)

// Copy reads src and applies everything it holds to dst.
func Copy(ctx context.Context, dst Sink, src Source) error {
	m, err := src.Snapshot(ctx)
	if err != nil {
		return err
	}
	return dst.Apply(ctx, m)
}
