// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"context"

	"github.com/hashicorp/gridsearch/internal/errors"
)

// Spec selects how a grid interprets its search string. It's one of
// Default, ColumnList or CustomFunc.
type Spec interface {
	spec()
}

// Default decomposes the search string into column scoped bindings.
type Default struct{}

func (Default) spec() {}

// ColumnList matches the raw search string, unparsed, against each of its
// columns with or-combined contains matches.
type ColumnList struct {
	columns []string
}

func (ColumnList) spec() {}

// NewColumnList creates a ColumnList. At least one column is required and
// columns must not be empty strings.
func NewColumnList(ctx context.Context, columns ...string) (ColumnList, error) {
	const op = "search.NewColumnList"
	if len(columns) == 0 {
		return ColumnList{}, errors.New(ctx, errors.InvalidParameter, op, "missing columns")
	}
	for _, c := range columns {
		if c == "" {
			return ColumnList{}, errors.New(ctx, errors.InvalidParameter, op, "empty column name")
		}
	}
	return ColumnList{columns: append([]string(nil), columns...)}, nil
}

// Columns returns a copy of the listed columns.
func (c ColumnList) Columns() []string {
	return append([]string(nil), c.columns...)
}

// CustomFunc receives the raw search string and the query; the search
// grammar is bypassed and its error is the result of the search.
type CustomFunc func(ctx context.Context, search string, q Query) error

func (CustomFunc) spec() {}
