package redis

import "time"

// Config is loaded with envir; every key carries the REDIS_ prefix.
type Config struct {
	_ struct{} `envir:"prefix=REDIS_"`

	ConnectionURL  string        `envir:"name=URL, default='redis://localhost:6379/0'"` // "redis://:password@localhost:6379/0"
	RetryAttempts  int           `envir:"default=3"`
	RetryInterval  time.Duration `envir:"default=5s"`
	ConnectTimeout time.Duration `envir:"default=30s"`
	Hash           string        `envir:"default=envir"` // hash holding the store entries
}
