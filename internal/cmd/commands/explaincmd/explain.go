// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package explaincmd

import (
	"fmt"

	"github.com/hashicorp/gridsearch/internal/cmd/base"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*Command)(nil)
	_ cli.CommandAutocomplete = (*Command)(nil)
)

type Command struct {
	*base.Command

	flagGrid    string
	flagQuery   string
	flagDialect string
}

type dropped struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

type explanation struct {
	Grid       string    `json:"grid"`
	Dialect    string    `json:"dialect"`
	SQL        string    `json:"sql"`
	Args       []any     `json:"args"`
	Predicates []string  `json:"predicates"`
	Dropped    []dropped `json:"dropped"`
}

func (c *Command) Synopsis() string {
	return "Print the SQL a grid search would run"
}

func (c *Command) Help() string {
	return base.WrapForHelpText([]string{
		"Usage: gridsearch explain [options]",
		"",
		"  Compile a quick search for a grid and print the resulting statement, its arguments,",
		"  the predicates the search was turned into and the terms that were ignored. The",
		"  database is never contacted:",
		"",
		`    $ gridsearch explain -config gridsearch.hcl -grid users -query 'created_at:month,3 bogus'`,
		"",
	}) + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSets {
	set := c.FlagSet(base.FlagSetConfig | base.FlagSetOutputFormat)

	f := set.NewFlagSet("Command Options")
	f.StringVar(&base.StringVar{
		Name:       "grid",
		Target:     &c.flagGrid,
		Completion: complete.PredictAnything,
		Usage:      "The name of the grid the search is compiled for.",
	})
	f.StringVar(&base.StringVar{
		Name:       "query",
		Target:     &c.flagQuery,
		Completion: complete.PredictAnything,
		Usage:      "The quick search string.",
	})
	f.StringVar(&base.StringVar{
		Name:       "dialect",
		Target:     &c.flagDialect,
		Completion: complete.PredictSet("postgres", "sqlite"),
		Usage:      "The SQL dialect to render. Defaults to the dialect of the configured database.",
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
	dialectName := c.flagDialect
	if dialectName == "" {
		dialectName = cfg.Database.Dialect
	}
	dialect, err := db.StringToDbType(dialectName)
	if err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}

	srv := base.NewServer(c.Command)
	if err := srv.SetupRegistry(c.Context, cfg); err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}
	g, err := srv.Registry.Lookup(c.Context, c.flagGrid)
	if err != nil {
		c.PrintCliError(err)
		return base.CommandUserError
	}

	st, err := grid.Explain(c.Context, g, dialect, c.flagQuery)
	if err != nil {
		c.PrintCliError(fmt.Errorf("Error compiling search: %w", err))
		return base.CommandCliError
	}

	out := explanation{
		Grid:       g.Name,
		Dialect:    dialect.String(),
		SQL:        st.SQL,
		Args:       st.Args,
		Predicates: make([]string, 0, len(st.Predicates)),
		Dropped:    make([]dropped, 0, len(st.Dropped)),
	}
	if out.Args == nil {
		out.Args = []any{}
	}
	for _, p := range st.Predicates {
		out.Predicates = append(out.Predicates, p.String())
	}
	for _, d := range st.Dropped {
		out.Dropped = append(out.Dropped, dropped{Token: d.Token, Reason: d.Reason.String()})
	}

	switch base.Format(c.UI) {
	case "json":
		if ok := c.PrintJson(out); !ok {
			return base.CommandCliError
		}
	default:
		c.UI.Output(printExplanation(out))
	}
	return base.CommandSuccess
}

func printExplanation(e explanation) string {
	ret := []string{
		"",
		"Search explanation:",
		base.WrapMap(2, 0, map[string]any{
			"Grid":    e.Grid,
			"Dialect": e.Dialect,
		}),
		"",
		"  Statement:",
		"    " + e.SQL,
	}
	if len(e.Args) > 0 {
		args := make([]string, 0, len(e.Args))
		for _, a := range e.Args {
			args = append(args, fmt.Sprintf("%#v", a))
		}
		ret = append(ret, "", "  Arguments:", base.WrapSlice(4, args))
	}
	if len(e.Predicates) > 0 {
		ret = append(ret, "", "  Predicates:", base.WrapSlice(4, e.Predicates))
	}
	if len(e.Dropped) > 0 {
		ignored := make([]string, 0, len(e.Dropped))
		for _, d := range e.Dropped {
			ignored = append(ignored, fmt.Sprintf("%s (%s)", d.Token, d.Reason))
		}
		ret = append(ret, "", "  Ignored terms:", base.WrapSlice(4, ignored))
	}
	return base.WrapForHelpText(ret)
}
