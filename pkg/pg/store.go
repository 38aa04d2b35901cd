package pg

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx used by Store.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store keeps entries as rows of a two-column (key, value) table.
type Store struct {
	db    DB
	table string // sanitized identifier
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// NewStore returns a store over table, optionally schema qualified
// ("config.variables"). The table needs text columns key (unique) and value.
func NewStore(db DB, table string) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return &Store{
		db:    db,
		table: pgx.Identifier(strings.Split(table, ".")).Sanitize(),
	}, nil
}

// Snapshot reads every row of the table.
func (s *Store) Snapshot(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, "SELECT key, value FROM "+s.table)
	if err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}

	m := make(map[string]string)
	var k, v string
	if _, err := pgx.ForEachRow(rows, []any{&k, &v}, func() error {
		m[k] = v
		return nil
	}); err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}

	return m, nil
}

// Apply upserts entries in one transaction.
func (s *Store) Apply(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		query := "INSERT INTO " + s.table + " (key, value) VALUES ($1, $2) " +
			"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value"

		batch := &pgx.Batch{}
		for _, k := range slices.Sorted(maps.Keys(entries)) {
			batch.Queue(query, k, entries[k])
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return errors.Join(ErrApplyFailed, err)
	}
	return nil
}
