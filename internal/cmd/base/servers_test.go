// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package base

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_SetupLogging(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	c, _ := TestCommand(t, "table")
	s := NewServer(c)

	var out bytes.Buffer
	require.NoError(s.SetupLogging(&out, "", "json", "debug", "standard"))
	assert.Equal(hclog.Debug, s.LogLevel)
	assert.Equal("debug", s.Info["log level"])

	s.Logger.Info("gated")
	assert.Empty(out.String(), "output is held until the gate is released")
	s.ReleaseLogGate()
	assert.Contains(out.String(), `"@message":"gated"`)

	s.Logger.Trace("too verbose")
	assert.NotContains(out.String(), "too verbose")

	require.Error(NewServer(c).SetupLogging(&out, "loud", "", "", ""))
}

func TestServer_SetupRegistryAndDatabase(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()
	cfg, err := config.LoadFile(TestConfigFile(t))
	require.NoError(err)

	c, ui := TestCommand(t, "table")
	s := NewServer(c)
	require.NoError(s.SetupRegistry(ctx, cfg))
	require.NoError(s.OpenDatabase(ctx, cfg.Database))
	require.NotNil(s.Database)
	require.Len(s.ShutdownFuncs, 1)

	g, err := s.Registry.Lookup(ctx, "users")
	require.NoError(err)
	assert.Equal("users", g.Table)

	s.PrintInfo(ui, "test")
	out := ui.OutputWriter.String()
	assert.Contains(out, "==> Gridsearch test configuration:")
	assert.Contains(out, "Database Dialect: sqlite")
	assert.Contains(out, "Grids: users")
	assert.Contains(out, "Search Key: q")
	assert.Contains(out, "Version: ")
	assert.True(strings.HasSuffix(strings.TrimSpace(out), "Log data will stream in below:"))

	s.RunShutdownFuncs(ui)
	assert.Empty(ui.ErrorWriter.String())

	require.Error(NewServer(c).OpenDatabase(ctx, nil))
}
