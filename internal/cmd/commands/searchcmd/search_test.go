// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package searchcmd

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/gridsearch/internal/cmd/base"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Run(t *testing.T) {
	cfgPath := base.TestConfigFile(t)

	tests := []struct {
		name       string
		format     string
		args       []string
		wantCode   int
		wantOutput []string
		wantError  string
	}{
		{
			name:       "table",
			format:     "table",
			args:       []string{"-grid", "users", "-query", "Age:>=18"},
			wantCode:   base.CommandSuccess,
			wantOutput: []string{"Rows of grid users:", "id  Name  Age", "joan", "mary"},
		},
		{
			name:       "no-rows",
			format:     "table",
			args:       []string{"-grid", "users", "-query", "name:nobody"},
			wantCode:   base.CommandSuccess,
			wantOutput: []string{"No rows found"},
		},
		{
			name:       "filter",
			format:     "table",
			args:       []string{"-grid", "users", "-filter", `"/item/name" == "mary"`},
			wantCode:   base.CommandSuccess,
			wantOutput: []string{"mary"},
		},
		{
			name:      "missing-grid-flag",
			format:    "table",
			wantCode:  base.CommandUserError,
			wantError: "Grid name must be provided via -grid",
		},
		{
			name:      "unknown-grid",
			format:    "table",
			args:      []string{"-grid", "orders"},
			wantCode:  base.CommandCliError,
			wantError: `Error searching grid "orders"`,
		},
		{
			name:      "bad-query",
			format:    "json",
			args:      []string{"-grid", "users", "-query", "age:<NULL"},
			wantCode:  base.CommandCliError,
			wantError: `{"error":`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			bc, ui := base.TestCommand(t, tt.format)
			c := &Command{Command: bc}
			code := c.Run(append([]string{"-config", cfgPath}, tt.args...))
			assert.Equal(tt.wantCode, code, ui.ErrorWriter.String())
			for _, want := range tt.wantOutput {
				assert.Contains(ui.OutputWriter.String(), want)
			}
			if tt.wantError != "" {
				assert.Contains(ui.ErrorWriter.String(), tt.wantError)
			}
		})
	}
}

func TestCommand_Run_json(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	cfgPath := base.TestConfigFile(t)
	bc, ui := base.TestCommand(t, "json")
	c := &Command{Command: bc}

	code := c.Run([]string{"-config", cfgPath, "-grid", "users", "-query", "Name:%jo%"})
	require.Equal(base.CommandSuccess, code, ui.ErrorWriter.String())

	var res grid.Result
	require.NoError(json.Unmarshal([]byte(ui.OutputWriter.String()), &res))
	assert.Equal("users", res.Grid)
	require.Len(res.Items, 2)
	assert.Equal("joan", res.Items[0]["name"])
	assert.Equal("John", res.Items[1]["name"])
}

func TestCommand_Run_missingConfig(t *testing.T) {
	t.Setenv(base.EnvGridsearchConfig, "")
	bc, ui := base.TestCommand(t, "table")
	c := &Command{Command: bc}
	assert.Equal(t, base.CommandUserError, c.Run([]string{"-grid", "users"}))
	assert.Contains(t, ui.ErrorWriter.String(), "Must specify a config file using -config")
}
