// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package base

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/require"
)

// TestUsersConfig is a configuration with a single "users" grid. It is
// formatted with the path of the sqlite database.
const TestUsersConfig = `
search_key = "q"
log_level  = "error"

database {
  dialect = "sqlite"
  url     = %q
  max_open_connections = 1
}

listener {
  address = "127.0.0.1:0"
}

grid "users" {
  table = "users"
  order = "id"
  limit = 10
  column "id"   { searchable = false }
  column "name" { label = "Name" }
  column "age"  { label = "Age" }
}
`

// TestConfigFile creates a sqlite database holding a users table and writes
// a configuration file for it. It returns the path of the configuration
// file.
func TestConfigFile(t testing.TB) string {
	t.Helper()
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, "gridsearch.db")
	conn, err := db.Open(ctx, db.Sqlite, dbPath, db.WithMaxOpenConnections(1))
	require.NoError(err)
	rw := db.New(conn)
	db.TestExec(t, rw,
		`create table users (id integer primary key, name text, age integer)`,
		`insert into users values (1, 'joan', 30), (2, 'John', 17), (3, 'mary', 45)`,
	)
	require.NoError(conn.Close(ctx))

	cfgPath := filepath.Join(dir, "gridsearch.hcl")
	require.NoError(os.WriteFile(cfgPath, []byte(fmt.Sprintf(TestUsersConfig, dbPath)), 0o600))
	return cfgPath
}

// TestCommand returns a command writing to a mock ui with the given output
// format.
func TestCommand(t testing.TB, format string) (*Command, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &Command{
		Context:    ctx,
		UI:         &GridsearchUI{Ui: ui, Format: format},
		ShutdownCh: make(chan struct{}),
	}, ui
}
