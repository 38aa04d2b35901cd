package mongo

import "time"

// Config is loaded with envir; every key carries the MONGODB_ prefix.
type Config struct {
	_ struct{} `envir:"prefix=MONGODB_"`

	ConnectionURL   string        `envir:"name=URL"`
	ConnectTimeout  time.Duration `envir:"default=10s"`
	MaxPoolSize     uint64        `envir:"default=100"`
	MinPoolSize     uint64        `envir:"default=1"`
	MaxConnIdleTime time.Duration `envir:"default=300s"`
	RetryWrites     bool          `envir:"default=true"`
	RetryReads      bool          `envir:"default=true"`
	RetryAttempts   int           `envir:"default=3"`
	RetryInterval   time.Duration `envir:"default=5s"`

	Database   string `envir:"default=envir"`
	Collection string `envir:"default=variables"` // one document per variable
}
