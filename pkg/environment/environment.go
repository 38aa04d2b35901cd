package environment

import (
	"strings"

	"github.com/dmitrymomot/envir"
)

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

var aliases = map[string]Environment{
	"dev":   Development,
	"local": Development,
	"prod":  Production,
	"stage": Staging,
}

// Parse normalizes s: it is lower-cased and the short aliases dev, local,
// prod and stage are expanded. Unknown names are kept as custom environments.
func Parse(s string) Environment {
	s = strings.ToLower(strings.TrimSpace(s))
	if env, ok := aliases[s]; ok {
		return env
	}
	return Environment(s)
}

// UnmarshalText lets envir load an Environment with aliases resolved.
func (e *Environment) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}

func (e Environment) String() string { return string(e) }

// Config is read from APP_ENV.
type Config struct {
	Env Environment `envir:"name=APP_ENV, default=development"`
}

// FromEnv returns the environment named by APP_ENV, Development when unset.
func FromEnv() (Environment, error) {
	cfg, err := envir.FromEnv[Config]()
	if err != nil {
		return "", err
	}
	return cfg.Env, nil
}
