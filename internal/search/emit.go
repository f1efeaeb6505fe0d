// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"context"
	"fmt"

	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/util"
)

// Emit applies one predicate to q. Errors returned by q are passed back
// unmodified; malformed predicates are reported as InvalidParameter.
func Emit(ctx context.Context, q Query, p Predicate) error {
	const op = "search.Emit"
	if util.IsNil(q) {
		return errors.New(ctx, errors.InvalidParameter, op, "missing query")
	}
	if p.Column == "" {
		return errors.New(ctx, errors.InvalidParameter, op, "missing column")
	}
	switch p.Kind {
	case Basic:
		if !p.Comparator.Valid() {
			return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("unsupported comparator %q", p.Comparator))
		}
		v, err := p.operand(ctx, op, 0)
		if err != nil {
			return err
		}
		return q.Where(p.Column, p.Comparator, v, p.Connector)
	case In, NotIn:
		return q.WhereIn(p.Column, p.Operands, p.Kind == NotIn, p.Connector)
	case Between:
		start, err := p.operand(ctx, op, 0)
		if err != nil {
			return err
		}
		end, err := p.operand(ctx, op, 1)
		if err != nil {
			return err
		}
		return q.WhereBetween(p.Column, start, end, p.Connector)
	case DateFunction:
		v, err := p.operand(ctx, op, 0)
		if err != nil {
			return err
		}
		return q.WhereDatePart(p.Column, p.DatePart, v, p.Connector)
	case Like, ILike:
		pattern, err := p.pattern(ctx, op)
		if err != nil {
			return err
		}
		return q.WhereLike(p.Column, pattern, p.Kind == ILike, p.Connector)
	case Regexp:
		pattern, err := p.pattern(ctx, op)
		if err != nil {
			return err
		}
		return q.WhereRegexp(p.Column, pattern, p.Connector)
	default:
		return errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("unknown predicate kind %d", p.Kind))
	}
}

func (p Predicate) operand(ctx context.Context, op errors.Op, i int) (any, error) {
	if i >= len(p.Operands) {
		return nil, errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("%s predicate on %q is missing operand %d", p.Kind, p.Column, i))
	}
	return p.Operands[i], nil
}

func (p Predicate) pattern(ctx context.Context, op errors.Op) (string, error) {
	o, err := p.operand(ctx, op, 0)
	if err != nil {
		return "", err
	}
	s, ok := o.(string)
	if !ok {
		return "", errors.New(ctx, errors.InvalidParameter, op, fmt.Sprintf("%s predicate on %q needs a string pattern", p.Kind, p.Column))
	}
	return s, nil
}
