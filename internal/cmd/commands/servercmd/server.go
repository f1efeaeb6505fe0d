// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package servercmd

import (
	"context"
	"fmt"
	"net"

	"github.com/hashicorp/gridsearch/internal/cmd/base"
	"github.com/hashicorp/gridsearch/internal/cmd/config"
	"github.com/hashicorp/gridsearch/internal/daemon/server"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/mitchellh/cli"
	"github.com/posener/complete"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var (
	_ cli.Command             = (*Command)(nil)
	_ cli.CommandAutocomplete = (*Command)(nil)
)

type Command struct {
	*base.Server

	Config *config.Config

	flagAddress string

	startedCh chan struct{} // for tests
}

func (c *Command) Synopsis() string {
	return "Start a gridsearch server"
}

func (c *Command) Help() string {
	return base.WrapForHelpText([]string{
		"Usage: gridsearch server [options]",
		"",
		"  Start a server that answers grid searches over http. The grids and the",
		"  database are read from the configuration file:",
		"",
		"    $ gridsearch server -config gridsearch.hcl",
		"",
		"  Once started, a grid is searched with:",
		"",
		"    $ curl 'http://127.0.0.1:9300/v1/grids/users?__search__=age:>=18'",
		"",
	}) + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSets {
	set := c.FlagSet(base.FlagSetConfig | base.FlagSetLogging)

	f := set.NewFlagSet("Command Options")
	f.StringVar(&base.StringVar{
		Name:       "address",
		Target:     &c.flagAddress,
		Completion: complete.PredictAnything,
		Usage:      "The address to listen on. Overrides the address of the listener block of the configuration file.",
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
		c.UI.Error(err.Error())
		return base.CommandUserError
	}

	var err error
	c.Config, err = c.LoadConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return base.CommandUserError
	}
	if c.flagAddress != "" {
		c.Config.Listener.Address = c.flagAddress
	}

	if err := c.SetupLogging(nil, c.FlagLogLevel, c.FlagLogFormat, c.Config.LogLevel, c.Config.LogFormat); err != nil {
		c.UI.Error(err.Error())
		return base.CommandUserError
	}
	defer c.RunShutdownFuncs(c.UI)

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.SetupRegistry(ctx, c.Config); err != nil {
		c.UI.Error(err.Error())
		return base.CommandUserError
	}
	if err := c.OpenDatabase(ctx, c.Config.Database); err != nil {
		c.UI.Error(err.Error())
		return base.CommandCliError
	}

	srv, err := c.newHttpServer(ctx)
	if err != nil {
		c.UI.Error(err.Error())
		return base.CommandCliError
	}
	ln, err := net.Listen("tcp", c.Config.Listener.Address)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error opening listener: %s", err))
		return base.CommandCliError
	}
	c.Info["listener address"] = ln.Addr().String()
	c.InfoKeys = append(c.InfoKeys, "listener address")

	c.PrintInfo(c.UI, "server")
	c.ReleaseLogGate()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})
	g.Go(func() error {
		select {
		case <-c.ShutdownCh:
			c.UI.Output("==> Gridsearch server shutdown triggered")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if c.startedCh != nil {
		close(c.startedCh)
	}

	if err := g.Wait(); err != nil {
		c.UI.Error(fmt.Sprintf("Error running server: %s", err))
		return base.CommandCliError
	}
	return base.CommandSuccess
}

func (c *Command) newHttpServer(ctx context.Context) (*server.Server, error) {
	reg := prometheus.NewRegistry()
	metrics, err := grid.NewMetrics(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("Error initializing metrics: %w", err)
	}
	repo, err := grid.NewRepository(ctx, db.New(c.Database), c.Registry,
		grid.WithLogger(c.Logger.Named("grid")),
		grid.WithSearchConfig(search.NewConfig(c.Config.SearchKey)),
		grid.WithMetrics(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("Error creating grid repository: %w", err)
	}
	srv, err := server.New(ctx, repo,
		server.WithLogger(c.Logger.Named("http")),
		server.WithPrometheusRegistry(reg),
		server.WithReadTimeout(c.Config.Listener.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("Error creating http server: %w", err)
	}
	return srv, nil
}
