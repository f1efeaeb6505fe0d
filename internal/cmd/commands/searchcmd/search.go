// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package searchcmd

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/gridsearch/internal/cmd/base"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*Command)(nil)
	_ cli.CommandAutocomplete = (*Command)(nil)
)

type Command struct {
	*base.Command

	flagGrid   string
	flagQuery  string
	flagFilter string
}

func (c *Command) Synopsis() string {
	return "Search the rows of a grid"
}

func (c *Command) Help() string {
	return base.WrapForHelpText([]string{
		"Usage: gridsearch search [options]",
		"",
		"  Run a quick search against a grid of the configuration file and print the matching rows:",
		"",
		`    $ gridsearch search -config gridsearch.hcl -grid users -query 'age:>=18 |name:%jo%'`,
		"",
		"  The query is a list of space separated column:condition terms. Rows can",
		"  additionally be narrowed with a boolean expression over the row:",
		"",
		`    $ gridsearch search -config gridsearch.hcl -grid users -filter '"/item/status" == "active"'`,
		"",
	}) + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSets {
	set := c.FlagSet(base.FlagSetConfig | base.FlagSetLogging | base.FlagSetOutputFormat)

	f := set.NewFlagSet("Command Options")
	f.StringVar(&base.StringVar{
		Name:       "grid",
		Target:     &c.flagGrid,
		Completion: complete.PredictAnything,
		Usage:      "The name of the grid to search.",
	})
	f.StringVar(&base.StringVar{
		Name:       "query",
		Target:     &c.flagQuery,
		Completion: complete.PredictAnything,
		Usage:      "The quick search string. When empty every row of the grid is returned, up to its limit.",
	})
	f.StringVar(&base.StringVar{
		Name:       "filter",
		Target:     &c.flagFilter,
		Completion: complete.PredictAnything,
		Usage:      `A boolean expression rows must match, with selectors such as "/item/name".`,
	})

	return set
}

func (c *Command) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *Command) AutocompleteFlags() complete.Flags {
	return c.Flags().Completions()
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}
	if c.flagGrid == "" {
		c.PrintCliError(fmt.Errorf("Grid name must be provided via -grid"))
		return base.CommandUserError
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}

	srv := base.NewServer(c.Command)
	if err := srv.SetupLogging(nil, c.FlagLogLevel, c.FlagLogFormat, cfg.LogLevel, cfg.LogFormat); err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}
	srv.ReleaseLogGate()
	defer srv.RunShutdownFuncs(c.UI)

	if err := srv.SetupRegistry(c.Context, cfg); err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}
	if err := srv.OpenDatabase(c.Context, cfg.Database); err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	repo, err := grid.NewRepository(c.Context, db.New(srv.Database), srv.Registry,
		grid.WithLogger(srv.Logger),
		grid.WithSearchConfig(search.NewConfig(cfg.SearchKey)),
	)
	if err != nil {
		c.PrintCliError(err)
		return base.CommandCliError
	}

	params := url.Values{}
	params.Set(repo.SearchKey(), c.flagQuery)
	if c.flagFilter != "" {
		params.Set(grid.FilterKey, c.flagFilter)
	}
	result, err := repo.Search(c.Context, c.flagGrid, params)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error searching grid %q: %w", c.flagGrid, err))
		return base.CommandCliError
	}

	switch base.Format(c.UI) {
	case "json":
		if ok := c.PrintJson(result); !ok {
			return base.CommandCliError
		}
	default:
		g, err := srv.Registry.Lookup(c.Context, c.flagGrid)
		if err != nil {
			c.PrintCliError(err)
			return base.CommandCliError
		}
		c.UI.Output(printItemTable(g, result))
	}
	return base.CommandSuccess
}

func printItemTable(g *grid.Grid, result *grid.Result) string {
	if len(result.Items) == 0 {
		return "No rows found"
	}
	headers := make([]string, 0, len(g.Columns))
	for _, col := range g.Columns {
		label := col.Label
		if label == "" {
			label = col.Name
		}
		headers = append(headers, label)
	}
	rows := make([][]any, 0, len(result.Items))
	for _, item := range result.Items {
		row := make([]any, 0, len(g.Columns))
		for _, col := range g.Columns {
			row = append(row, item[col.Name])
		}
		rows = append(rows, row)
	}
	return base.WrapForHelpText([]string{
		fmt.Sprintf("Rows of grid %s:", result.Grid),
		"",
	}) + "\n" + base.WrapTable(2, headers, rows)
}
