// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package base

const (
	// FlagNameConfig is the flag used by commands to read in the path of the
	// configuration file.
	FlagNameConfig = "config"
)

const (
	EnvGridsearchConfig     = `GRIDSEARCH_CONFIG`
	EnvGridsearchLogLevel   = `GRIDSEARCH_LOG_LEVEL`
	EnvGridsearchCLINoColor = `GRIDSEARCH_CLI_NO_COLOR`
	EnvGridsearchCLIFormat  = `GRIDSEARCH_CLI_FORMAT`
)

const (
	// CommandSuccess is the exit code of a command that succeeded.
	CommandSuccess = 0
	// CommandUserError is returned for bad flags, arguments or
	// configuration.
	CommandUserError = 1
	// CommandCliError is returned when the command failed while running.
	CommandCliError = 2
)
