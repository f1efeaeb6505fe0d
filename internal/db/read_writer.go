// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hashicorp/go-dbw"
	"github.com/hashicorp/gridsearch/internal/errors"
)

// NoRowsAffected is returned by Exec when it fails.
const NoRowsAffected = 0

// Reader interface defines raw queries against a grid's table.
type Reader interface {
	// Query will run the raw query and return the *sql.Rows results. The
	// caller must close the returned *sql.Rows. Query can/should be used in
	// combination with ScanMaps.
	Query(ctx context.Context, sql string, values []any) (*sql.Rows, error)

	// Dialect returns the dialect of the underlying database.
	Dialect() (DbType, error)
}

// Writer interface defines raw statements, which are used to create tables
// and seed rows.
type Writer interface {
	// Exec will execute the sql with the values as parameters. The int
	// returned is the number of rows affected by the sql.
	Exec(ctx context.Context, sql string, values []any) (int, error)
}

// RW uses a DB as a connection for its read/write operations.
type RW struct {
	underlying *dbw.RW
}

// ensure that RW implements the interfaces of: Reader and Writer
var (
	_ Reader = (*RW)(nil)
	_ Writer = (*RW)(nil)
)

// New creates a new RW using an open DB.
func New(underlying *DB) *RW {
	if underlying == nil {
		return &RW{}
	}
	return &RW{underlying: dbw.New(underlying.wrapped)}
}

// Exec will execute the sql with the values as parameters.
func (rw *RW) Exec(ctx context.Context, sql string, values []any) (int, error) {
	const op = "db.(RW).Exec"
	if rw == nil || rw.underlying == nil {
		return NoRowsAffected, errors.New(ctx, errors.InvalidParameter, op, "missing underlying db")
	}
	if sql == "" {
		return NoRowsAffected, errors.New(ctx, errors.InvalidParameter, op, "missing sql")
	}
	n, err := rw.underlying.Exec(ctx, sql, values)
	if err != nil {
		return NoRowsAffected, errors.Wrap(ctx, err, op)
	}
	return n, nil
}

// Query will run the raw query and return the *sql.Rows results. Errors from
// the database adapter are converted so callers can match on codes like
// ColumnNotFound and MissingTable.
func (rw *RW) Query(ctx context.Context, sql string, values []any) (*sql.Rows, error) {
	const op = "db.(RW).Query"
	if rw == nil || rw.underlying == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing underlying db")
	}
	if sql == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing sql")
	}
	rows, err := rw.underlying.Query(ctx, sql, values)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return rows, nil
}

// Dialect returns the dialect of the underlying database.
func (rw *RW) Dialect() (DbType, error) {
	const op = "db.(RW).Dialect"
	if rw == nil || rw.underlying == nil {
		return UnknownDB, errors.New(context.Background(), errors.InvalidParameter, op, "missing underlying db")
	}
	typ, _, err := rw.underlying.Dialect()
	if err != nil {
		return UnknownDB, errors.Wrap(context.Background(), err, op)
	}
	return typ, nil
}

// ScanMaps reads every remaining row into a map keyed by column name and
// closes rows. Byte slices are returned as strings and times are formatted
// as RFC3339 so the results are safe to encode as JSON.
func ScanMaps(ctx context.Context, rows *sql.Rows) ([]map[string]any, error) {
	const op = "db.ScanMaps"
	if rows == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing rows")
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[c] = string(v)
			case time.Time:
				row[c] = v.UTC().Format(time.RFC3339)
			default:
				row[c] = v
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return results, nil
}
