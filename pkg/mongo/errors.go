package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrEmptyConnectionURL     = errors.New("empty mongo connection URL, use MONGODB_URL env var")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrSnapshotFailed         = errors.New("failed to read variables collection")
	ErrApplyFailed            = errors.New("failed to write variables collection")
)
