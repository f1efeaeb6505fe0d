// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"context"
	"fmt"

	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/util"
)

// Compile runs the search grammar over raw without touching a Query. It
// returns the predicates in token order and the dropped tokens. Supported
// options: WithCaseInsensitiveLike.
func Compile(raw string, columns *ColumnMap, opt ...Option) ([]Predicate, []Dropped) {
	opts := getOpts(opt...)
	bindings, dropped := ParseBindings(Tokenize(raw), columns)
	predicates := make([]Predicate, 0, len(bindings))
	for _, b := range bindings {
		predicates = append(predicates, NewPredicate(b, Classify(b.Condition), opts.withCaseInsensitiveLike))
	}
	return predicates, dropped
}

// Apply reads the raw search string from params under the key of cfg and
// applies it to q. An absent or blank search string is a no-op. See
// ApplyString for the supported options.
func Apply(ctx context.Context, q Query, spec Spec, columns *ColumnMap, cfg *Config, params Params, opt ...Option) error {
	if util.IsNil(params) {
		return nil
	}
	return ApplyString(ctx, q, spec, columns, params.Get(cfg.Key()), opt...)
}

// ApplyString applies the raw search string to q according to spec. A nil
// spec behaves like Default. The pass is linear: the first error returned
// by q stops it and is returned as is. Supported options: WithLogger,
// WithPredicateFunc and WithDroppedFunc.
func ApplyString(ctx context.Context, q Query, spec Spec, columns *ColumnMap, raw string, opt ...Option) error {
	const op = "search.ApplyString"
	if trimASCIISpace(raw) == "" {
		return nil
	}
	if util.IsNil(q) {
		return errors.New(ctx, errors.InvalidParameter, op, "missing query")
	}
	opts := getOpts(opt...)

	switch s := spec.(type) {
	case nil, Default:
		return applyDefault(ctx, q, columns, raw, opts)
	case ColumnList:
		if len(s.columns) == 0 {
			return errors.New(ctx, errors.InvalidParameter, op, "missing columns")
		}
		pattern := "%" + raw + "%"
		for _, c := range s.columns {
			p := Predicate{Column: c, Kind: Like, Operands: []any{pattern}, Connector: Or}
			if err := emit(ctx, q, p, opts); err != nil {
				return err
			}
		}
		return nil
	case CustomFunc:
		if s == nil {
			return errors.New(ctx, errors.InvalidParameter, op, "missing custom search func")
		}
		return s(ctx, raw, q)
	default:
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("unsupported search spec %T", spec))
	}
}

func applyDefault(ctx context.Context, q Query, columns *ColumnMap, raw string, opts options) error {
	bindings, dropped := ParseBindings(Tokenize(raw), columns)
	for _, d := range dropped {
		opts.withLogger.Trace("dropped search token", "token", d.Token, "reason", d.Reason.String())
		if opts.withDroppedFunc != nil {
			opts.withDroppedFunc(d)
		}
	}
	caseInsensitive := q.PrefersCaseInsensitiveLike()
	for _, b := range bindings {
		p := NewPredicate(b, Classify(b.Condition), caseInsensitive)
		if err := emit(ctx, q, p, opts); err != nil {
			return err
		}
	}
	return nil
}

func emit(ctx context.Context, q Query, p Predicate, opts options) error {
	opts.withLogger.Trace("applying search predicate", "predicate", p.String())
	if opts.withPredicateFunc != nil {
		opts.withPredicateFunc(p)
	}
	return Emit(ctx, q, p)
}
