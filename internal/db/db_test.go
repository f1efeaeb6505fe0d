// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToDbType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dialect string
		want    db.DbType
		wantErr bool
	}{
		{dialect: "postgres", want: db.Postgres},
		{dialect: "PostgreSQL", want: db.Postgres},
		{dialect: "sqlite", want: db.Sqlite},
		{dialect: " sqlite3 ", want: db.Sqlite},
		{dialect: "mysql", want: db.UnknownDB, wantErr: true},
		{dialect: "", want: db.UnknownDB, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			assert := assert.New(t)
			got, err := db.StringToDbType(tt.dialect)
			assert.Equal(tt.want, got)
			if tt.wantErr {
				assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
				return
			}
			assert.NoError(err)
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	t.Run("missing-url", func(t *testing.T) {
		_, err := db.Open(ctx, db.Sqlite, "")
		assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("unknown-type", func(t *testing.T) {
		_, err := db.Open(ctx, db.UnknownDB, "file::memory:")
		assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("negative-max-connections", func(t *testing.T) {
		_, err := db.Open(ctx, db.Sqlite, "file::memory:", db.WithMaxOpenConnections(-1))
		assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("sqlite", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		conn, _ := db.TestSetup(t)
		typ, err := conn.DbType()
		require.NoError(err)
		assert.Equal(db.Sqlite, typ)
	})
}

func TestRW_Query(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, rw := db.TestSetup(t)
	db.TestExec(t, rw,
		`create table people (id integer primary key, name text not null, born text)`,
		`insert into people (id, name, born) values (1, 'alice', '1990-04-02'), (2, 'bob', null)`,
	)

	t.Run("rows", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		rows, err := rw.Query(ctx, `select id, name, born from people where id >= ? order by id`, []any{1})
		require.NoError(err)
		got, err := db.ScanMaps(ctx, rows)
		require.NoError(err)
		assert.Equal([]map[string]any{
			{"id": int64(1), "name": "alice", "born": "1990-04-02"},
			{"id": int64(2), "name": "bob", "born": nil},
		}, got)
	})
	t.Run("no-rows", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		rows, err := rw.Query(ctx, `select id from people where id = ?`, []any{42})
		require.NoError(err)
		got, err := db.ScanMaps(ctx, rows)
		require.NoError(err)
		assert.NotNil(got)
		assert.Empty(got)
	})
	t.Run("missing-column", func(t *testing.T) {
		_, err := rw.Query(ctx, `select agee from people`, nil)
		require.Error(t, err)
		assert.True(t, errors.Match(errors.T(errors.ColumnNotFound), err), err.Error())
	})
	t.Run("missing-table", func(t *testing.T) {
		_, err := rw.Query(ctx, `select * from nope`, nil)
		require.Error(t, err)
		assert.True(t, errors.Match(errors.T(errors.MissingTable), err), err.Error())
	})
	t.Run("regexp", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		rows, err := rw.Query(ctx, `select name from people where name regexp ? order by id`, []any{"^b"})
		require.NoError(err)
		got, err := db.ScanMaps(ctx, rows)
		require.NoError(err)
		assert.Equal([]map[string]any{{"name": "bob"}}, got)

		rows, err = rw.Query(ctx, `select id from people where born regexp ? order by id`, []any{"-04-"})
		require.NoError(err)
		got, err = db.ScanMaps(ctx, rows)
		require.NoError(err)
		assert.Equal([]map[string]any{{"id": int64(1)}}, got, "null values never match")

		rows, err = rw.Query(ctx, `select id from people where id regexp ?`, []any{"^2$"})
		require.NoError(err)
		got, err = db.ScanMaps(ctx, rows)
		require.NoError(err)
		assert.Equal([]map[string]any{{"id": int64(2)}}, got)
	})
	t.Run("regexp-invalid-pattern", func(t *testing.T) {
		rows, err := rw.Query(ctx, `select id from people where name regexp ?`, []any{"(unclosed"})
		if err == nil {
			_, err = db.ScanMaps(ctx, rows)
		}
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid regexp")
	})
	t.Run("missing-sql", func(t *testing.T) {
		_, err := rw.Query(ctx, "", nil)
		assert.True(t, errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("dialect", func(t *testing.T) {
		typ, err := rw.Dialect()
		require.NoError(t, err)
		assert.Equal(t, db.Sqlite, typ)
	})
}

func TestRW_QueryPostgres(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	conn, mock := db.TestSetupWithMock(t)
	rw := db.New(conn)

	typ, err := rw.Dialect()
	require.NoError(err)
	assert.Equal(db.Postgres, typ)

	mock.ExpectQuery(regexp.QuoteMeta(`select * from "users" where "name" = $1`)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "bob"))

	rows, err := rw.Query(ctx, `select * from "users" where "name" = ?`, []any{"bob"})
	require.NoError(err)
	got, err := db.ScanMaps(ctx, rows)
	require.NoError(err)
	assert.Equal([]map[string]any{{"id": int64(7), "name": "bob"}}, got)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestRW_Exec(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	_, rw := db.TestSetup(t)
	db.TestExec(t, rw, `create table tags (name text)`)
	n, err := rw.Exec(ctx, `insert into tags (name) values (?), (?)`, []any{"a", "b"})
	require.NoError(err)
	assert.Equal(2, n)

	var missing *db.RW
	_, err = missing.Exec(ctx, "select 1", nil)
	assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
}
