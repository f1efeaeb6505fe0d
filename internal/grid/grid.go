// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/gridsearch/internal/db/clause"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/search"
)

// Placement is where a grid's UI renders its quick search trigger.
type Placement string

const (
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
)

// DefaultPlacement is used when a grid doesn't set a placement.
const DefaultPlacement = PlacementRight

// DefaultLimit is the number of rows returned when a grid doesn't set a
// limit.
const DefaultLimit = 100

// Valid reports whether p is a known placement.
func (p Placement) Valid() bool {
	return p == PlacementLeft || p == PlacementRight
}

// Column is a column of a grid's table.
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	// Unsearchable columns are returned by searches but a search string
	// can't target them.
	Unsearchable bool `json:"unsearchable,omitempty"`
}

// Grid is a search enabled view over a table.
type Grid struct {
	Name      string      `json:"name"`
	Table     string      `json:"table"`
	Columns   []Column    `json:"columns"`
	Spec      search.Spec `json:"-"`
	Placement Placement   `json:"placement"`
	Order     string      `json:"order,omitempty"`
	Limit     int         `json:"limit"`

	columns *search.ColumnMap
}

// NewGrid creates a grid over table. At least one column is required.
// Supported options: WithSpec, WithPlacement, WithOrder and WithLimit.
func NewGrid(ctx context.Context, name, table string, columns []Column, opt ...Option) (*Grid, error) {
	const op = "grid.NewGrid"
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	g := &Grid{
		Name:      name,
		Table:     table,
		Columns:   append([]Column(nil), columns...),
		Spec:      opts.withSpec,
		Placement: opts.withPlacement,
		Order:     opts.withOrder,
		Limit:     opts.withLimit,
	}
	if err := g.validate(ctx); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	g.columns = newColumnMap(g.Columns)
	return g, nil
}

func newColumnMap(columns []Column) *search.ColumnMap {
	searchable := make([]search.Column, 0, len(columns))
	for _, c := range columns {
		if c.Unsearchable {
			continue
		}
		searchable = append(searchable, search.Column{Name: c.Name, Label: c.Label})
	}
	return search.NewColumnMap(searchable...)
}

func (g *Grid) validate(ctx context.Context) error {
	const op = "grid.(Grid).validate"
	switch {
	case g.Name == "":
		return errors.New(ctx, errors.InvalidParameter, op, "missing name")
	case g.Table == "":
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: missing table", g.Name))
	case len(g.Columns) == 0:
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: missing columns", g.Name))
	case !g.Placement.Valid():
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: unknown placement %q", g.Name, g.Placement))
	case g.Limit < 0:
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: negative limit", g.Name))
	}
	seen := make(map[string]struct{}, len(g.Columns))
	for _, c := range g.Columns {
		if c.Name == "" {
			return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: column without a name", g.Name))
		}
		if _, ok := seen[c.Name]; ok {
			return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: duplicate column %q", g.Name, c.Name))
		}
		seen[c.Name] = struct{}{}
	}
	if _, err := g.orderBy(); err != nil {
		return err
	}
	if l, ok := g.Spec.(search.ColumnList); ok {
		for _, c := range l.Columns() {
			if _, ok := seen[c]; !ok {
				return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("grid %q: search column %q is not a grid column", g.Name, c))
			}
		}
	}
	return nil
}

// ColumnMap returns the resolver for the grid's searchable columns.
func (g *Grid) ColumnMap() *search.ColumnMap {
	if g.columns == nil {
		g.columns = newColumnMap(g.Columns)
	}
	return g.columns
}

// orderBy parses Order, "<column> [asc|desc]" entries separated by commas,
// into quoted order by terms. Every column must be a grid column.
func (g *Grid) orderBy() ([]string, error) {
	const op = "grid.(Grid).orderBy"
	if strings.TrimSpace(g.Order) == "" {
		return nil, nil
	}
	known := make(map[string]struct{}, len(g.Columns))
	for _, c := range g.Columns {
		known[c.Name] = struct{}{}
	}
	var terms []string
	for _, term := range strings.Split(g.Order, ",") {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("grid %q: invalid order %q", g.Name, g.Order))
		}
		if _, ok := known[fields[0]]; !ok {
			return nil, errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("grid %q: order column %q is not a grid column", g.Name, fields[0]))
		}
		dir := "asc"
		if len(fields) == 2 {
			dir = strings.ToLower(fields[1])
			if dir != "asc" && dir != "desc" {
				return nil, errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("grid %q: invalid order direction %q", g.Name, fields[1]))
			}
		}
		terms = append(terms, clause.QuoteIdentifier(fields[0])+" "+dir)
	}
	return terms, nil
}

// Search modes of a grid, as named in configuration files.
const (
	SearchModeDefault = "default"
	SearchModeColumns = "columns"
	SearchModeCustom  = "custom"
)

// SearchMode names the kind of the grid's search spec.
func (g *Grid) SearchMode() string {
	switch g.Spec.(type) {
	case search.ColumnList:
		return SearchModeColumns
	case search.CustomFunc:
		return SearchModeCustom
	default:
		return SearchModeDefault
	}
}
