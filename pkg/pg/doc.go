// Package pg provides an envir store kept in a PostgreSQL table, built on the
// pgx/v5 driver, plus helpers for connecting, migrating and health checks.
//
// # Architecture
//
//   - Config: loaded with envir from PG_* variables. Controls pool limits,
//     retry cadence, the goose version table and the variables table.
//   - Connect: opens a *pgxpool.Pool and pings it, retrying with a linearly
//     growing delay until the database becomes available.
//   - Migrate: applies the embedded goose migrations that create the default
//     envir_variables table.
//   - Store: exposes a (key, value) table as an envir Source and Sink. Apply
//     upserts all entries in a single transaction.
//   - Healthcheck: a func(context.Context) error closure for readiness probes.
//
// # Usage
//
//	cfg, err := envir.FromEnv[pg.Config]()
//	if err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
//	s, err := pg.NewStore(pool, cfg.Table)
//	if err != nil {
//		return err
//	}
//	snapshot, err := s.Snapshot(ctx)
//
// Errors wrap the underlying driver error with a package sentinel via
// errors.Join, so both errors.Is(err, pg.ErrApplyFailed) and driver-level
// inspection work.
package pg
