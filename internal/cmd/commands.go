// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/hashicorp/gridsearch/internal/cmd/base"
	"github.com/hashicorp/gridsearch/internal/cmd/commands/explaincmd"
	"github.com/hashicorp/gridsearch/internal/cmd/commands/searchcmd"
	"github.com/hashicorp/gridsearch/internal/cmd/commands/servercmd"
	"github.com/hashicorp/gridsearch/internal/cmd/commands/version"
	"github.com/mitchellh/cli"
)

// Commands is the mapping of all the available commands.
var Commands map[string]cli.CommandFactory

func initCommands(ui, serverCmdUi cli.Ui) {
	Commands = map[string]cli.CommandFactory{
		"server": func() (cli.Command, error) {
			return &servercmd.Command{
				Server: base.NewServer(base.NewCommand(serverCmdUi)),
			}, nil
		},
		"search": func() (cli.Command, error) {
			return &searchcmd.Command{
				Command: base.NewCommand(ui),
			}, nil
		},
		"explain": func() (cli.Command, error) {
			return &explaincmd.Command{
				Command: base.NewCommand(ui),
			}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{
				Command: base.NewCommand(ui),
			}, nil
		},
	}
}
