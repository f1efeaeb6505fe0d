// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/hashicorp/go-dbw"
	"github.com/hashicorp/gridsearch/internal/errors"
	"gorm.io/driver/postgres"
)

// DbType defines a database type.
type DbType = dbw.DbType

const (
	UnknownDB = dbw.UnknownDB
	Postgres  = dbw.Postgres
	Sqlite    = dbw.Sqlite
)

// StringToDbType provides a string to type conversion. The comparison is case
// insensitive and "sqlite3" is accepted as an alias for sqlite.
func StringToDbType(dialect string) (DbType, error) {
	const op = "db.StringToDbType"
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return Sqlite, nil
	default:
		return UnknownDB, errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("%q is an unknown dialect", dialect))
	}
}

// DB is a wrapper around the ORM
type DB struct {
	wrapped *dbw.DB
}

// Open a database connection which is long-lived. The options of WithDebug,
// WithLogger and WithMaxOpenConnections are supported.
//
// Sqlite connections use the pure go driver so the binary can be built
// without cgo. Postgres connections prefer the simple protocol so string
// arguments are coerced by the server into the column's type.
func Open(ctx context.Context, dbType DbType, connectionUrl string, opt ...Option) (*DB, error) {
	const op = "db.Open"
	if connectionUrl == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing connection url")
	}
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	var dialect dbw.Dialector
	switch dbType {
	case Postgres:
		dialect = postgres.New(postgres.Config{
			DSN:                  connectionUrl,
			PreferSimpleProtocol: true,
		})
	case Sqlite:
		dialect = sqlite.Open(connectionUrl)
	default:
		return nil, errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("unable to open %s database type", dbType))
	}

	dbwOpts := []dbw.Option{
		dbw.WithDebug(opts.withDebug),
	}
	if opts.withLogger != nil {
		dbwOpts = append(dbwOpts, dbw.WithLogger(opts.withLogger))
	}
	if opts.withMaxOpenConnections > 0 {
		dbwOpts = append(dbwOpts, dbw.WithMaxOpenConnections(opts.withMaxOpenConnections))
	}
	wrapped, err := dbw.OpenWith(dialect, dbwOpts...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to open database"))
	}
	return &DB{wrapped: wrapped}, nil
}

// DbType returns the type of the database connection.
func (d *DB) DbType() (DbType, error) {
	const op = "db.(DB).DbType"
	if d == nil || d.wrapped == nil {
		return UnknownDB, errors.New(context.Background(), errors.InvalidParameter, op, "missing underlying database")
	}
	typ, _, err := d.wrapped.DbType()
	if err != nil {
		return UnknownDB, errors.Wrap(context.Background(), err, op)
	}
	return typ, nil
}

// Debug will enable/disable debug info for the connection
func (d *DB) Debug(on bool) {
	if d == nil || d.wrapped == nil {
		return
	}
	d.wrapped.Debug(on)
}

// Close the underlying connection pool.
func (d *DB) Close(ctx context.Context) error {
	const op = "db.(DB).Close"
	if d == nil || d.wrapped == nil {
		return nil
	}
	if err := d.wrapped.Close(ctx); err != nil {
		return errors.Wrap(ctx, err, op)
	}
	return nil
}
