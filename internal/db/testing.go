// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hashicorp/go-dbw"
	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
)

// TestSetup returns a private in-memory sqlite database for the test along
// with a RW for it. The pool is limited to a single connection since every
// new connection to an in-memory database would otherwise see an empty
// schema.
func TestSetup(t testing.TB) (*DB, *RW) {
	t.Helper()
	require := require.New(t)
	ctx := context.Background()
	id, err := uuid.GenerateUUID()
	require.NoError(err)
	conn, err := Open(ctx, Sqlite, fmt.Sprintf("file:%s?mode=memory&cache=shared", id), WithMaxOpenConnections(1))
	require.NoError(err)
	t.Cleanup(func() {
		assert.NoError(t, conn.Close(ctx), "Got error closing test db.")
	})
	return conn, New(conn)
}

// TestExec runs each statement with the writer and fails the test on the
// first error.
func TestExec(t testing.TB, w Writer, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := w.Exec(context.Background(), s, nil)
		require.NoError(t, err, s)
	}
}

// TestSetupWithMock will return a postgres DB backed by a Sqlmock which can
// be used to assert the statements sent to the database.
func TestSetupWithMock(t testing.TB) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	require := require.New(t)
	mockDb, mock, err := sqlmock.New()
	require.NoError(err)
	t.Cleanup(func() {
		_ = mockDb.Close()
	})
	wrapped, err := dbw.OpenWith(postgres.New(postgres.Config{
		Conn: mockDb,
	}))
	require.NoError(err)
	return &DB{wrapped: wrapped}, mock
}
