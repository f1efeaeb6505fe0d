// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"context"
	"time"

	"github.com/hashicorp/go-bexpr"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/hashicorp/gridsearch/internal/util"
)

// FilterKey is the request parameter holding an optional bexpr filter,
// evaluated against each row after the search ran. Rows are exposed to the
// filter under "/item", e.g. "/item/name" == "joan".
const FilterKey = "filter"

// Result is the outcome of a grid search.
type Result struct {
	Grid      string           `json:"grid"`
	Placement Placement        `json:"placement"`
	Items     []map[string]any `json:"items"`
}

// Repository runs searches of registered grids against a database.
type Repository struct {
	reader   db.Reader
	registry *Registry
	config   *search.Config
	logger   hclog.Logger
	metrics  *Metrics
}

// NewRepository creates a Repository. Supported options: WithLogger,
// WithSearchConfig and WithMetrics.
func NewRepository(ctx context.Context, r db.Reader, registry *Registry, opt ...Option) (*Repository, error) {
	const op = "grid.NewRepository"
	switch {
	case util.IsNil(r):
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing db reader")
	case registry == nil:
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing registry")
	}
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &Repository{
		reader:   r,
		registry: registry,
		config:   opts.withSearchConfig,
		logger:   opts.withLogger,
		metrics:  opts.withMetrics,
	}, nil
}

// Registry returns the repository's grid registry.
func (r *Repository) Registry() *Registry {
	return r.registry
}

// SearchKey returns the request parameter key holding the search string.
func (r *Repository) SearchKey() string {
	return r.config.Key()
}

// Search looks up the grid, reads the search string from params and runs
// the resulting select. Without a search string every row, up to the grid's
// limit, is returned. A filter param narrows the rows further.
func (r *Repository) Search(ctx context.Context, gridName string, params search.Params) (*Result, error) {
	const op = "grid.(Repository).Search"
	g, err := r.registry.Lookup(ctx, gridName)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	var raw, filter string
	if !util.IsNil(params) {
		raw = params.Get(r.config.Key())
		filter = params.Get(FilterKey)
	}

	start := time.Now()
	st, items, err := r.run(ctx, g, raw)
	r.metrics.observe(g.Name, st, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}

	if filter != "" {
		items, err = r.filterItems(ctx, g.Name, items, filter)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
	}
	return &Result{
		Grid:      g.Name,
		Placement: g.Placement,
		Items:     items,
	}, nil
}

func (r *Repository) run(ctx context.Context, g *Grid, raw string) (*Statement, []map[string]any, error) {
	const op = "grid.(Repository).run"
	dialect, err := r.reader.Dialect()
	if err != nil {
		return nil, nil, errors.Wrap(ctx, err, op)
	}
	st, err := Explain(ctx, g, dialect, raw, WithLogger(r.logger))
	if err != nil {
		return nil, nil, errors.Wrap(ctx, err, op)
	}
	r.logger.Debug("searching grid", "grid", g.Name, "search", raw, "sql", st.SQL, "dropped", len(st.Dropped))
	rows, err := r.reader.Query(ctx, st.SQL, st.Args)
	if err != nil {
		return st, nil, errors.Wrap(ctx, err, op, errors.WithMsg("grid %q", g.Name))
	}
	items, err := db.ScanMaps(ctx, rows)
	if err != nil {
		return st, nil, errors.Wrap(ctx, err, op)
	}
	return st, items, nil
}

type filterItem struct {
	Item map[string]any `json:"item"`
}

// filterItems keeps the rows the filter evaluates to true for. A row the
// filter can't be evaluated against is left out and logged.
func (r *Repository) filterItems(ctx context.Context, gridName string, items []map[string]any, filter string) ([]map[string]any, error) {
	const op = "grid.(Repository).filterItems"
	e, err := bexpr.CreateEvaluator(filter, bexpr.WithTagName("json"))
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithMsg("couldn't build filter"), errors.WithCode(errors.InvalidParameter))
	}
	filtered := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, err := e.Evaluate(filterItem{item})
		if err != nil {
			r.logger.Debug("filter evaluation failed, skipping row", "grid", gridName, "filter", filter, "error", err)
			continue
		}
		if m {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}
