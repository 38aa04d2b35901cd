package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// Local is a store kept in a single file on the local filesystem.
// Writes replace the file atomically. Safe for concurrent use within one process.
type Local struct {
	mu     sync.Mutex
	path   string
	format Format
	perm   fs.FileMode
}

// LocalOption defines a function that configures Local.
type LocalOption func(*Local)

// WithFormat overrides the format detected from the file extension.
func WithFormat(f Format) LocalOption {
	return func(s *Local) { s.format = f }
}

// WithPermissions sets the mode of files created by Apply. Defaults to 0600.
func WithPermissions(perm fs.FileMode) LocalOption {
	return func(s *Local) { s.perm = perm }
}

// NewLocal returns a store backed by the file at path. The file does not need
// to exist until the first Snapshot.
func NewLocal(path string, opts ...LocalOption) (*Local, error) {
	if path == "" {
		return nil, ErrInvalidConfig
	}

	s := &Local{
		path:   filepath.Clean(path),
		format: FormatFromPath(path),
		perm:   0o600,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file path the store reads and writes.
func (s *Local) Path() string { return s.path }

// Snapshot reads and decodes the file.
func (s *Local) Snapshot(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Apply merges entries into the file contents and writes the result.
// A missing file is created.
func (s *Local) Apply(ctx context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil && !errors.Is(err, ErrFileNotFound) {
		return err
	}
	if current == nil {
		current = make(map[string]string, len(entries))
	}
	maps.Copy(current, entries)

	data, err := Encode(s.format, current)
	if err != nil {
		return err
	}
	return s.write(data)
}

func (s *Local) read(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, s.path)
		default:
			if info, statErr := os.Stat(s.path); statErr == nil && info.IsDir() {
				return nil, fmt.Errorf("%w: %s", ErrIsDirectory, s.path)
			}
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
		}
	}

	return Decode(s.format, data)
}

// write stores data in a temporary file next to the target and renames it
// over the target so readers never observe a partial file.
func (s *Local) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Chmod(s.perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}
