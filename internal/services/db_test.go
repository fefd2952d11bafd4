package services

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// fakeDB satisfies DB for service tests. Unset funcs fall back to
// benign defaults: empty result sets and zero-row command tags.
type fakeDB struct {
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	ExecFunc     func(ctx context.Context, sql string, args ...any) (CommandTag, error)
	BeginFunc    func(ctx context.Context) (Tx, error)

	commits   int
	rollbacks int
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if db.QueryRowFunc != nil {
		return db.QueryRowFunc(ctx, sql, args...)
	}
	return errorRow{err: pgx.ErrNoRows}
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if db.QueryFunc != nil {
		return db.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	if db.ExecFunc != nil {
		return db.ExecFunc(ctx, sql, args...)
	}
	return fakeCommandTag{}, nil
}

func (db *fakeDB) Begin(ctx context.Context) (Tx, error) {
	if db.BeginFunc != nil {
		return db.BeginFunc(ctx)
	}
	return &fakeTx{db: db}, nil
}

// fakeTx routes statements back to the parent fakeDB so tests can
// observe transactional writes through the same funcs.
type fakeTx struct {
	db *fakeDB
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return tx.db.QueryRow(ctx, sql, args...)
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return tx.db.Query(ctx, sql, args...)
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return tx.db.Exec(ctx, sql, args...)
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.db.commits++
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	tx.db.rollbacks++
	return nil
}

type fakeCommandTag struct {
	rowsAffected int64
}

func (t fakeCommandTag) RowsAffected() int64 {
	return t.rowsAffected
}

type errorRow struct {
	err error
}

func (r errorRow) Scan(dest ...any) error {
	return r.err
}

// rowFromValues builds a Row that scans the given values positionally.
func rowFromValues(values ...any) Row {
	return fakeRow{values: values}
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	return scanInto(dest, r.values)
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(dest, r.rows[r.idx-1])
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error {
	return r.err
}

func scanInto(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		val := reflect.ValueOf(v)
		if !val.Type().AssignableTo(target.Type()) {
			if !val.Type().ConvertibleTo(target.Type()) {
				return fmt.Errorf("scan: cannot assign %T to %s", v, target.Type())
			}
			val = val.Convert(target.Type())
		}
		target.Set(val)
	}
	return nil
}
