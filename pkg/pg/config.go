package pg

import "time"

// Config is loaded with envir; every key carries the PG_ prefix.
type Config struct {
	_ struct{} `envir:"prefix=PG_"`

	ConnectionString  string        `envir:"name=CONN_URL"`
	MaxOpenConns      int32         `envir:"default=10"`
	MaxIdleConns      int32         `envir:"default=5"`
	HealthCheckPeriod time.Duration `envir:"name=HEALTHCHECK_PERIOD, default=1m"`
	MaxConnIdleTime   time.Duration `envir:"default=10m"`
	MaxConnLifetime   time.Duration `envir:"default=30m"`

	RetryAttempts int           `envir:"default=3"`
	RetryInterval time.Duration `envir:"default=5s"`

	MigrationsTable string `envir:"default=envir_schema_migrations"` // goose version table
	Table           string `envir:"default=envir_variables"`         // table holding the store entries
}
