// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/parseutil"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/grid"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GRIDSEARCH_DATABASE_URL.
	EnvPrefix = "GRIDSEARCH"

	DefaultListenerAddress = "127.0.0.1:9300"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "standard"
)

// Config is the configuration for the gridsearch commands.
type Config struct {
	SearchKey string    `hcl:"search_key"`
	LogLevel  string    `hcl:"log_level"`
	LogFormat string    `hcl:"log_format"`
	Database  *Database `hcl:"database"`
	Listener  *Listener `hcl:"listener"`

	// Grids are parsed by hand since their blocks are keyed by name.
	Grids []*Grid `hcl:"-"`
}

type Database struct {
	Dialect            string `hcl:"dialect"`
	Url                string `hcl:"url"`
	MaxOpenConnections int    `hcl:"max_open_connections"`
}

type Listener struct {
	Address        string        `hcl:"address"`
	ReadTimeoutRaw any           `hcl:"read_timeout"`
	ReadTimeout    time.Duration `hcl:"-"`
}

// Grid describes one search-enabled grid.
type Grid struct {
	Name      string    `hcl:"-"`
	Table     string    `hcl:"table"`
	Placement string    `hcl:"placement"`
	Order     string    `hcl:"order"`
	Limit     int       `hcl:"limit"`
	Search    *Search   `hcl:"search"`
	Columns   []*Column `hcl:"-"`
}

// Search selects how a grid's search string is applied. Mode is "default"
// (the default) or "columns", in which case Columns lists the columns the
// whole search string is matched against.
type Search struct {
	Mode    string   `hcl:"mode"`
	Columns []string `hcl:"columns"`
}

type Column struct {
	Name       string `hcl:"-"`
	Label      string `hcl:"label"`
	Searchable *bool  `hcl:"searchable"`
}

// envOverrides are read from GRIDSEARCH_* variables and replace the matching
// file values when set.
type envOverrides struct {
	SearchKey       string `envconfig:"SEARCH_KEY"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
	LogFormat       string `envconfig:"LOG_FORMAT"`
	DatabaseDialect string `envconfig:"DATABASE_DIALECT"`
	DatabaseUrl     string `envconfig:"DATABASE_URL"`
	ListenerAddress string `envconfig:"LISTENER_ADDRESS"`
}

// LoadFile loads the configuration from the given file.
func LoadFile(path string) (*Config, error) {
	const op = "config.LoadFile"
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(context.Background(), err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to read %q", path))
	}
	c, err := Parse(string(d))
	if err != nil {
		return nil, errors.Wrap(context.Background(), err, op, errors.WithMsg("unable to parse %q", path))
	}
	return c, nil
}

// Parse decodes an hcl document, applies the environment overrides and the
// defaults. The result is not validated, see Validate.
func Parse(d string) (*Config, error) {
	const op = "config.Parse"
	ctx := context.Background()
	obj, err := hcl.Parse(d)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
	}

	result := &Config{}
	if err := hcl.DecodeObject(result, obj); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
	}

	list, ok := obj.Node.(*ast.ObjectList)
	if !ok {
		return nil, errors.New(ctx, errors.InvalidConfig, op, "error parsing: file doesn't contain a root object")
	}
	if o := list.Filter("grid"); len(o.Items) > 0 {
		if result.Grids, err = parseGrids(o); err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
		}
	}

	if err := result.applyEnv(); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
	}
	if err := result.setDefaults(); err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
	}
	return result, nil
}

func parseGrids(list *ast.ObjectList) ([]*Grid, error) {
	grids := make([]*Grid, 0, len(list.Items))
	for i, item := range list.Items {
		if len(item.Keys) != 1 {
			return nil, fmt.Errorf("grid block %d must have exactly one name", i)
		}
		name, ok := item.Keys[0].Token.Value().(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("grid block %d has an invalid name", i)
		}
		var g Grid
		if err := hcl.DecodeObject(&g, item.Val); err != nil {
			return nil, fmt.Errorf("grid %q: %w", name, err)
		}
		g.Name = name

		body, ok := item.Val.(*ast.ObjectType)
		if !ok {
			return nil, fmt.Errorf("grid %q: expected a block", name)
		}
		for j, col := range body.List.Filter("column").Items {
			if len(col.Keys) != 1 {
				return nil, fmt.Errorf("grid %q: column block %d must have exactly one name", name, j)
			}
			colName, ok := col.Keys[0].Token.Value().(string)
			if !ok || colName == "" {
				return nil, fmt.Errorf("grid %q: column block %d has an invalid name", name, j)
			}
			var c Column
			if err := hcl.DecodeObject(&c, col.Val); err != nil {
				return nil, fmt.Errorf("grid %q column %q: %w", name, colName, err)
			}
			c.Name = colName
			g.Columns = append(g.Columns, &c)
		}
		grids = append(grids, &g)
	}
	return grids, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}
	if env.SearchKey != "" {
		c.SearchKey = env.SearchKey
	}
	if env.LogLevel != "" {
		c.LogLevel = env.LogLevel
	}
	if env.LogFormat != "" {
		c.LogFormat = env.LogFormat
	}
	if env.DatabaseDialect != "" || env.DatabaseUrl != "" {
		if c.Database == nil {
			c.Database = &Database{}
		}
		if env.DatabaseDialect != "" {
			c.Database.Dialect = env.DatabaseDialect
		}
		if env.DatabaseUrl != "" {
			c.Database.Url = env.DatabaseUrl
		}
	}
	if env.ListenerAddress != "" {
		if c.Listener == nil {
			c.Listener = &Listener{}
		}
		c.Listener.Address = env.ListenerAddress
	}
	return nil
}

func (c *Config) setDefaults() error {
	if c.SearchKey == "" {
		c.SearchKey = search.DefaultKey
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.Listener == nil {
		c.Listener = &Listener{}
	}
	if c.Listener.Address == "" {
		c.Listener.Address = DefaultListenerAddress
	}
	if c.Listener.ReadTimeoutRaw != nil {
		t, err := parseutil.ParseDurationSecond(c.Listener.ReadTimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid listener read_timeout: %w", err)
		}
		c.Listener.ReadTimeout = t
		c.Listener.ReadTimeoutRaw = nil
	}
	if c.Database != nil {
		u, err := resolveUrl(c.Database.Url)
		if err != nil {
			return fmt.Errorf("invalid database url: %w", err)
		}
		c.Database.Url = u
	}
	return nil
}

// resolveUrl reads env:// and file:// references. Other values, including
// sqlite "file:" uris, are returned unchanged.
func resolveUrl(u string) (string, error) {
	if !strings.HasPrefix(u, "env://") && !strings.HasPrefix(u, "file://") {
		return u, nil
	}
	return parseutil.ParsePath(u)
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	const op = "config.(Config).Validate"
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "standard", "json":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown log_format %q", c.LogFormat))
	}

	switch {
	case c.Database == nil:
		result = multierror.Append(result, fmt.Errorf("missing database block"))
	default:
		if _, err := db.StringToDbType(c.Database.Dialect); err != nil {
			result = multierror.Append(result, fmt.Errorf("database: unknown dialect %q", c.Database.Dialect))
		}
		if c.Database.Url == "" {
			result = multierror.Append(result, fmt.Errorf("database: missing url"))
		}
		if c.Database.MaxOpenConnections < 0 {
			result = multierror.Append(result, fmt.Errorf("database: max_open_connections must not be negative"))
		}
	}

	if c.Listener != nil && c.Listener.ReadTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("listener: read_timeout must not be negative"))
	}

	if len(c.Grids) == 0 {
		result = multierror.Append(result, fmt.Errorf("no grids are configured"))
	}
	seen := make(map[string]struct{}, len(c.Grids))
	for _, g := range c.Grids {
		if _, ok := seen[g.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("grid %q is defined more than once", g.Name))
		}
		seen[g.Name] = struct{}{}
		for _, err := range g.validate() {
			result = multierror.Append(result, fmt.Errorf("grid %q: %w", g.Name, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.New(context.Background(), errors.InvalidConfig, op, "invalid configuration", errors.WithWrap(err))
	}
	return nil
}

func (g *Grid) validate() []error {
	var errs []error
	if g.Table == "" {
		errs = append(errs, fmt.Errorf("missing table"))
	}
	if g.Placement != "" && !grid.Placement(g.Placement).Valid() {
		errs = append(errs, fmt.Errorf("unknown placement %q", g.Placement))
	}
	if g.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit must not be negative"))
	}
	if len(g.Columns) == 0 {
		errs = append(errs, fmt.Errorf("no columns are configured"))
	}
	if g.Search != nil {
		switch g.Search.Mode {
		case "", grid.SearchModeDefault:
			if len(g.Search.Columns) > 0 {
				errs = append(errs, fmt.Errorf("search columns require mode %q", grid.SearchModeColumns))
			}
		case grid.SearchModeColumns:
			if len(g.Search.Columns) == 0 {
				errs = append(errs, fmt.Errorf("search mode %q needs at least one column", grid.SearchModeColumns))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown search mode %q", g.Search.Mode))
		}
	}
	return errs
}

// spec returns the search spec the grid's search block describes.
func (g *Grid) spec(ctx context.Context) (search.Spec, error) {
	if g.Search == nil || g.Search.Mode != grid.SearchModeColumns {
		return search.Default{}, nil
	}
	return search.NewColumnList(ctx, g.Search.Columns...)
}

// BuildRegistry validates every configured grid and registers it.
func (c *Config) BuildRegistry(ctx context.Context) (*grid.Registry, error) {
	const op = "config.(Config).BuildRegistry"
	r := grid.NewRegistry()
	for _, g := range c.Grids {
		columns := make([]grid.Column, 0, len(g.Columns))
		for _, col := range g.Columns {
			columns = append(columns, grid.Column{
				Name:         col.Name,
				Label:        col.Label,
				Unsearchable: col.Searchable != nil && !*col.Searchable,
			})
		}
		spec, err := g.spec(ctx)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithMsg("grid %q", g.Name), errors.WithCode(errors.InvalidConfig))
		}
		built, err := grid.NewGrid(ctx, g.Name, g.Table, columns,
			grid.WithSpec(spec),
			grid.WithPlacement(grid.Placement(g.Placement)),
			grid.WithOrder(g.Order),
			grid.WithLimit(g.Limit),
		)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithMsg("grid %q", g.Name), errors.WithCode(errors.InvalidConfig))
		}
		if err := r.Register(ctx, built); err != nil {
			return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
		}
	}
	return r, nil
}

// Open opens the configured database.
func (d *Database) Open(ctx context.Context, opt ...db.Option) (*db.DB, error) {
	const op = "config.(Database).Open"
	if d == nil {
		return nil, errors.New(ctx, errors.InvalidConfig, op, "missing database configuration")
	}
	typ, err := db.StringToDbType(d.Dialect)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.InvalidConfig))
	}
	if d.MaxOpenConnections > 0 {
		opt = append(opt, db.WithMaxOpenConnections(d.MaxOpenConnections))
	}
	conn, err := db.Open(ctx, typ, d.Url, opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return conn, nil
}
