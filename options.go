package envir

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/envir/pkg/resolve"
)

// Option configures a Decoder or an Encoder.
type Option func(*options)

type options struct {
	registry *Registry
	logger   *slog.Logger
	lookup   resolve.Lookup
}

func defaultOptions() *options {
	return &options{
		registry: defaultRegistry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lookup:   os.LookupEnv,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRegistry resolves converter names against r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger enables debug logging of field resolution. Only keys and the
// origin of each value are logged, never the values themselves.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLookup replaces the variable lookup used for ${NAME} extrapolation in
// defaults. The process environment is used by default.
func WithLookup(fn func(key string) (string, bool)) Option {
	return func(o *options) {
		if fn != nil {
			o.lookup = fn
		}
	}
}

// WithLookupMap is WithLookup over a fixed map.
func WithLookupMap(m map[string]string) Option {
	return WithLookup(func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	})
}
