// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package base

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-secure-stdlib/gatedwriter"
	"github.com/hashicorp/gridsearch/internal/cmd/config"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/version"
	"github.com/mitchellh/cli"
)

// Server holds what the long running and one shot commands share: the
// logger, the database connection and the grid registry.
type Server struct {
	*Command

	InfoKeys []string
	Info     map[string]string

	logOutput   io.Writer
	GatedWriter *gatedwriter.Writer
	Logger      hclog.Logger
	LogLevel    hclog.Level

	Database *db.DB
	Registry *grid.Registry

	ShutdownFuncs []func() error
}

func NewServer(cmd *Command) *Server {
	return &Server{
		Command:  cmd,
		InfoKeys: make([]string, 0, 20),
		Info:     make(map[string]string),
		Logger:   hclog.NewNullLogger(),
	}
}

// SetupLogging creates the logger. Its output is gated until ReleaseLogGate
// is called so that startup information is printed first.
func (b *Server) SetupLogging(output io.Writer, flagLogLevel, flagLogFormat, configLogLevel, configLogFormat string) error {
	b.logOutput = output
	if b.logOutput == nil {
		b.logOutput = os.Stderr
	}
	b.GatedWriter = gatedwriter.NewWriter(b.logOutput)

	logLevel, logFormat, err := ProcessLogLevelAndFormat(flagLogLevel, flagLogFormat, configLogLevel, configLogFormat)
	if err != nil {
		return err
	}
	b.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "gridsearch",
		Output: b.GatedWriter,
		Level:  logLevel,
		// Note that if logFormat is either unspecified or standard, then
		// the resulting logger's format will be standard.
		JSONFormat: logFormat == JSONFormat,
	})

	b.Info["log level"] = logLevel.String()
	b.InfoKeys = append(b.InfoKeys, "log level")

	b.LogLevel = logLevel
	return nil
}

func (b *Server) ReleaseLogGate() {
	if b.GatedWriter == nil {
		return
	}
	// Release the log gate.
	b.Logger.(hclog.OutputResettable).ResetOutputWithFlush(&hclog.LoggerOptions{
		Output: b.logOutput,
	}, b.GatedWriter)
}

// OpenDatabase connects to the configured database. Closing the connection
// is registered as a shutdown func.
func (b *Server) OpenDatabase(ctx context.Context, c *config.Database) error {
	conn, err := c.Open(ctx, db.WithLogger(b.Logger.Named("db")))
	if err != nil {
		return fmt.Errorf("Error connecting to database: %w", err)
	}
	b.Database = conn
	b.ShutdownFuncs = append(b.ShutdownFuncs, func() error {
		if err := conn.Close(context.Background()); err != nil {
			return fmt.Errorf("Error closing database: %w", err)
		}
		return nil
	})

	b.Info["database dialect"] = c.Dialect
	b.InfoKeys = append(b.InfoKeys, "database dialect")
	return nil
}

// SetupRegistry registers every configured grid.
func (b *Server) SetupRegistry(ctx context.Context, c *config.Config) error {
	r, err := c.BuildRegistry(ctx)
	if err != nil {
		return fmt.Errorf("Error registering grids: %w", err)
	}
	b.Registry = r

	names := make([]string, 0, len(c.Grids))
	for _, g := range r.List() {
		names = append(names, g.Name)
	}
	b.Info["grids"] = strings.Join(names, ", ")
	b.InfoKeys = append(b.InfoKeys, "grids")
	b.Info["search key"] = c.SearchKey
	b.InfoKeys = append(b.InfoKeys, "search key")
	return nil
}

func (b *Server) PrintInfo(ui cli.Ui, mode string) {
	b.InfoKeys = append(b.InfoKeys, "version")
	verInfo := version.Get()
	b.Info["version"] = verInfo.FullVersionNumber(false)
	if verInfo.Revision != "" {
		b.Info["version sha"] = strings.Trim(verInfo.Revision, "'")
		b.InfoKeys = append(b.InfoKeys, "version sha")
	}

	// Server configuration output
	padding := 24
	sort.Strings(b.InfoKeys)
	ui.Output(fmt.Sprintf("==> Gridsearch %s configuration:\n", mode))
	for _, k := range b.InfoKeys {
		ui.Output(fmt.Sprintf(
			"%s%s: %s",
			strings.Repeat(" ", padding-len(k)),
			titleCase(k),
			b.Info[k]))
	}
	ui.Output("")

	// Output the header that the server has started
	ui.Output(fmt.Sprintf("==> Gridsearch %s started! Log data will stream in below:\n", mode))
}

func (b *Server) RunShutdownFuncs(ui cli.Ui) {
	for _, f := range b.ShutdownFuncs {
		if err := f(); err != nil {
			ui.Error(fmt.Sprintf("Error running a shutdown task: %s", err.Error()))
		}
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
