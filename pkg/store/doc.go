// Package store defines the backing stores envir reads from and writes to.
//
// A Source returns a snapshot of flat string entries; a Sink applies entries.
// Both take a context so that remote providers (files on S3, Redis hashes,
// PostgreSQL tables, MongoDB collections) can honour deadlines.
//
// This package ships three in-process implementations:
//
//   - Env: the process environment.
//   - Map: a concurrency-safe in-memory map, handy in tests.
//   - Layered: several sources merged by precedence, later layers win.
//
// Example:
//
//	src := store.NewLayered(defaults, store.NewEnv())
//	snapshot, err := src.Snapshot(ctx)
//	if err != nil {
//		return err
//	}
//	cfg, err := envir.From[Config](snapshot)
package store
