// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"context"
	"strconv"
	"strings"

	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/db/clause"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/search"
)

// Statement is the select a search of a grid runs.
type Statement struct {
	SQL  string
	Args []any

	// Predicates are the predicates applied in order. They're only known
	// for grids using search.Default or search.ColumnList.
	Predicates []search.Predicate
	// Dropped are the tokens of the search string that were ignored.
	Dropped []search.Dropped
}

// Explain compiles raw against g for the dialect without touching a
// database. Supported options: WithLogger.
func Explain(ctx context.Context, g *Grid, dialect db.DbType, raw string, opt ...Option) (*Statement, error) {
	const op = "grid.Explain"
	if g == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing grid")
	}
	opts, err := getOpts(opt...)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	b, err := clause.NewBuilder(dialect)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	st := &Statement{}
	err = search.ApplyString(ctx, b, g.Spec, g.ColumnMap(), raw,
		search.WithLogger(opts.withLogger),
		search.WithPredicateFunc(func(p search.Predicate) { st.Predicates = append(st.Predicates, p) }),
		search.WithDroppedFunc(func(d search.Dropped) { st.Dropped = append(st.Dropped, d) }),
	)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithMsg("grid %q", g.Name))
	}
	orderBy, err := g.orderBy()
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}

	var sb strings.Builder
	cols := make([]string, 0, len(g.Columns))
	for _, c := range g.Columns {
		cols = append(cols, clause.QuoteIdentifier(c.Name))
	}
	sb.WriteString("select ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" from ")
	sb.WriteString(clause.QuoteIdentifier(g.Table))
	cond, args := b.Condition()
	if cond != "" {
		sb.WriteString(" where ")
		sb.WriteString(cond)
	}
	if len(orderBy) > 0 {
		sb.WriteString(" order by ")
		sb.WriteString(strings.Join(orderBy, ", "))
	}
	sb.WriteString(" limit ")
	sb.WriteString(strconv.Itoa(g.limit()))

	st.SQL = sb.String()
	st.Args = args
	return st, nil
}

func (g *Grid) limit() int {
	if g.Limit == 0 {
		return DefaultLimit
	}
	return g.Limit
}
