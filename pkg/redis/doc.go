// Package redis provides an envir store kept in a Redis hash, plus helpers
// for connecting to Redis.
//
// The package wraps the go-redis client and adds:
//
//   - Robust `Connect` which retries the connection using the supplied
//     configuration.
//   - `Store`, which exposes one hash as an envir Source and Sink. Every hash
//     field is one variable.
//   - Health-check helpers for liveness / readiness probes.
//
// Configuration is described by the `Config` struct, loaded with envir from
// REDIS_URL, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL, REDIS_CONNECT_TIMEOUT
// and REDIS_HASH.
//
// # Usage
//
//	cfg, err := envir.FromEnv[redis.Config]()
//	if err != nil {
//		return err
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	s, err := redis.NewStore(client, cfg.Hash)
//	if err != nil {
//		return err
//	}
//	if err := envir.ExportTo(ctx, s, appConfig); err != nil {
//		return err
//	}
//
// # Errors
//
// Sentinel errors (e.g. ErrRedisNotReady) wrap the underlying go-redis errors
// using errors.Join.
package redis
