package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env is the process environment.
type Env struct {
	prefix string
}

// EnvOption configures Env.
type EnvOption func(*Env)

// WithPrefix limits the snapshot to variables starting with prefix.
// Apply is not affected.
func WithPrefix(prefix string) EnvOption {
	return func(e *Env) { e.prefix = prefix }
}

// NewEnv returns a Store over the process environment.
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the current process environment.
func (e *Env) Snapshot(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrSnapshot, err)
	}

	m := env.ToMap(os.Environ())
	if e.prefix == "" {
		return m, nil
	}
	for k := range m {
		if !strings.HasPrefix(k, e.prefix) {
			delete(m, k)
		}
	}
	return m, nil
}

// Apply sets every entry in the process environment.
func (e *Env) Apply(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrApply, err)
	}
	for k, v := range entries {
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrApply, fmt.Errorf("set %s: %w", k, err))
		}
	}
	return nil
}
