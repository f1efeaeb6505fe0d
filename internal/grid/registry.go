// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/gridsearch/internal/errors"
)

// Registry holds the search enabled grids by name. It's safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	grids map[string]*Grid
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{grids: make(map[string]*Grid)}
}

// Register adds a copy of g to the registry. WithSpec, WithPlacement,
// WithOrder and WithLimit override the grid's own settings; the result is
// validated again. Registering a name twice is an error.
func (r *Registry) Register(ctx context.Context, g *Grid, opt ...Option) error {
	const op = "grid.(Registry).Register"
	if g == nil {
		return errors.New(ctx, errors.InvalidParameter, op, "missing grid")
	}
	opts, err := applyOpts(options{
		withSpec:      g.Spec,
		withPlacement: g.Placement,
		withOrder:     g.Order,
		withLimit:     g.Limit,
	}, opt...)
	if err != nil {
		return errors.Wrap(ctx, err, op)
	}
	registered := &Grid{
		Name:      g.Name,
		Table:     g.Table,
		Columns:   append([]Column(nil), g.Columns...),
		Spec:      opts.withSpec,
		Placement: opts.withPlacement,
		Order:     opts.withOrder,
		Limit:     opts.withLimit,
	}
	if err := registered.validate(ctx); err != nil {
		return errors.Wrap(ctx, err, op)
	}
	registered.columns = newColumnMap(registered.Columns)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.grids[registered.Name]; ok {
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q is already registered", registered.Name))
	}
	r.grids[registered.Name] = registered
	return nil
}

// Lookup returns the grid registered under name.
func (r *Registry) Lookup(ctx context.Context, name string) (*Grid, error) {
	const op = "grid.(Registry).Lookup"
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.grids[name]
	if !ok {
		return nil, errors.New(ctx, errors.NotFound, op, fmt.Sprintf("grid %q not found", name))
	}
	return g, nil
}

// List returns the registered grids ordered by name.
func (r *Registry) List() []*Grid {
	r.mu.RLock()
	defer r.mu.RUnlock()
	grids := make([]*Grid, 0, len(r.grids))
	for _, g := range r.grids {
		grids = append(grids, g)
	}
	sort.Slice(grids, func(i, j int) bool { return grids[i].Name < grids[j].Name })
	return grids
}
