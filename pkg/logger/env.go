package logger

import (
	"log/slog"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/environment"
)

// Config is the logger configuration read from the process environment.
// Level and Format override the preset chosen by Env when set.
type Config struct {
	Level   *slog.Level             `envir:"name=LOG_LEVEL"`
	Format  *Format                 `envir:"name=LOG_FORMAT"`
	Env     environment.Environment `envir:"name=APP_ENV, default=development"`
	Service string                  `envir:"name=SERVICE_NAME, default=envir"`
}

// Options turns cfg into logger options.
func (cfg Config) Options() []Option {
	opts := []Option{WithEnvironment(cfg.Env, cfg.Service)}
	if cfg.Level != nil {
		opts = append(opts, WithLevel(*cfg.Level))
	}
	if cfg.Format != nil {
		opts = append(opts, WithFormat(*cfg.Format))
	}
	return opts
}

// FromEnv builds a logger from LOG_LEVEL, LOG_FORMAT, APP_ENV and
// SERVICE_NAME. opts are applied after the environment-derived options.
func FromEnv(opts ...Option) (*slog.Logger, error) {
	cfg, err := envir.FromEnv[Config]()
	if err != nil {
		return nil, err
	}
	return New(append(cfg.Options(), opts...)...), nil
}
