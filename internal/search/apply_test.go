// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search_test

import (
	"context"
	stderrors "errors"
	"net/url"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_examples(t *testing.T) {
	t.Parallel()
	columns := testColumns()
	tests := []struct {
		name                string
		raw                 string
		spec                search.Spec
		caseInsensitiveLike bool
		want                []search.TestCall
	}{
		{
			name: "pattern",
			raw:  "name:%john%",
			want: []search.TestCall{
				{Method: "WhereLike", Column: "name", Args: []any{"%john%"}, Connector: search.And},
			},
		},
		{
			name:                "pattern-case-insensitive-dialect",
			raw:                 "name:%john%",
			caseInsensitiveLike: true,
			want: []search.TestCall{
				{Method: "WhereILike", Column: "name", Args: []any{"%john%"}, Connector: search.And},
			},
		},
		{
			name: "range",
			raw:  "age:[18,30]",
			want: []search.TestCall{
				{Method: "WhereBetween", Column: "age", Args: []any{"18", "30"}, Connector: search.And},
			},
		},
		{
			name: "set",
			raw:  "status:(1,2,3)",
			want: []search.TestCall{
				{Method: "WhereIn", Column: "status", Args: []any{"1", "2", "3"}, Connector: search.And},
			},
		},
		{
			name: "negated-set",
			raw:  "status:!(1,2)",
			want: []search.TestCall{
				{Method: "WhereNotIn", Column: "status", Args: []any{"1", "2"}, Connector: search.And},
			},
		},
		{
			name: "date-part",
			raw:  "created_at:date,2024-01-01",
			want: []search.TestCall{
				{Method: "WhereDatePart", Column: "created_at", Args: []any{search.Date, "2024-01-01"}, Connector: search.And},
			},
		},
		{
			name: "basic",
			raw:  "age:>=18",
			want: []search.TestCall{
				{Method: "Where", Column: "age", Args: []any{search.GreaterOrEqual, "18"}, Connector: search.And},
			},
		},
		{
			name: "unknown-column",
			raw:  "unknown_col:5",
			want: nil,
		},
		{
			name: "column-list-raw-string-verbatim",
			raw:  `"john smith"`,
			spec: mustColumnList(t, "name"),
			want: []search.TestCall{
				{Method: "WhereLike", Column: "name", Args: []any{`%"john smith"%`}, Connector: search.Or},
			},
		},
		{
			name:                "column-list-always-case-sensitive",
			raw:                 "jo",
			spec:                mustColumnList(t, "name", "status"),
			caseInsensitiveLike: true,
			want: []search.TestCall{
				{Method: "WhereLike", Column: "name", Args: []any{"%jo%"}, Connector: search.Or},
				{Method: "WhereLike", Column: "status", Args: []any{"%jo%"}, Connector: search.Or},
			},
		},
		{
			name: "quoted-basic-value",
			raw:  `Name:"john smith"`,
			want: []search.TestCall{
				{Method: "Where", Column: "name", Args: []any{search.Equal, "john smith"}, Connector: search.And},
			},
		},
		{
			name:                "contains-comparator-case-sensitive",
			raw:                 "name:%jo",
			caseInsensitiveLike: true,
			want: []search.TestCall{
				{Method: "WhereLike", Column: "name", Args: []any{"%jo%"}, Connector: search.And},
			},
		},
		{
			name: "null",
			raw:  "status:NULL |status:(NULL,1)",
			want: []search.TestCall{
				{Method: "Where", Column: "status", Args: []any{search.Equal, nil}, Connector: search.And},
				{Method: "WhereIn", Column: "status", Args: []any{nil, "1"}, Connector: search.Or},
			},
		},
		{
			name: "parens-in-regexp-make-a-set",
			raw:  "name:/^jo(h)?n$/",
			want: []search.TestCall{
				{Method: "WhereIn", Column: "name", Args: []any{"h"}, Connector: search.And},
			},
		},
		{
			name: "regexp",
			raw:  "name:/^jo.n$/",
			want: []search.TestCall{
				{Method: "WhereRegexp", Column: "name", Args: []any{"^jo.n$"}, Connector: search.And},
			},
		},
		{
			name: "flat-accumulation-in-token-order",
			raw:  "age:1 |name:2 status:3 malformed |Created:year,2024",
			want: []search.TestCall{
				{Method: "Where", Column: "age", Args: []any{search.Equal, "1"}, Connector: search.And},
				{Method: "Where", Column: "name", Args: []any{search.Equal, "2"}, Connector: search.Or},
				{Method: "Where", Column: "status", Args: []any{search.Equal, "3"}, Connector: search.And},
				{Method: "WhereDatePart", Column: "created_at", Args: []any{search.Year, "2024"}, Connector: search.Or},
			},
		},
		{
			name: "custom",
			raw:  " anything goes ",
			spec: search.CustomFunc(func(_ context.Context, raw string, q search.Query) error {
				return q.Where("name", search.Equal, raw, search.And)
			}),
			want: []search.TestCall{
				{Method: "Where", Column: "name", Args: []any{search.Equal, " anything goes "}, Connector: search.And},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			q := &search.TestQuery{CaseInsensitiveLike: tt.caseInsensitiveLike}
			params := url.Values{search.DefaultKey: []string{tt.raw}}
			err := search.Apply(context.Background(), q, tt.spec, columns, nil, params)
			require.NoError(err)
			assert.Equal(tt.want, q.Calls)
		})
	}
}

func mustColumnList(t *testing.T, columns ...string) search.ColumnList {
	t.Helper()
	l, err := search.NewColumnList(context.Background(), columns...)
	require.NoError(t, err)
	return l
}

func TestApply_noop(t *testing.T) {
	t.Parallel()
	columns := testColumns()
	tests := []struct {
		name   string
		params search.Params
	}{
		{name: "nil-params", params: nil},
		{name: "absent", params: url.Values{}},
		{name: "empty", params: url.Values{search.DefaultKey: []string{""}}},
		{name: "blank", params: url.Values{search.DefaultKey: []string{"   "}}},
		{name: "other-key", params: url.Values{"q": []string{"age:1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			q := &search.TestQuery{}
			called := false
			custom := search.CustomFunc(func(context.Context, string, search.Query) error {
				called = true
				return nil
			})
			assert.NoError(search.Apply(context.Background(), q, search.Default{}, columns, nil, tt.params))
			assert.NoError(search.Apply(context.Background(), q, custom, columns, nil, tt.params))
			assert.Empty(q.Calls)
			assert.False(called)
		})
	}
}

func TestApply_configKey(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	cfg := search.NewConfig("")
	assert.Equal(search.DefaultKey, cfg.Key())
	cfg.SetKey("q")
	assert.Equal("q", cfg.Key())

	q := &search.TestQuery{}
	params := url.Values{"q": []string{"age:1"}, search.DefaultKey: []string{"name:x"}}
	require.NoError(search.Apply(context.Background(), q, search.Default{}, testColumns(), cfg, params))
	assert.Equal([]search.TestCall{
		{Method: "Where", Column: "age", Args: []any{search.Equal, "1"}, Connector: search.And},
	}, q.Calls)

	cfg.SetKey("")
	assert.Equal(search.DefaultKey, cfg.Key())
	var nilCfg *search.Config
	assert.Equal(search.DefaultKey, nilCfg.Key())
}

func TestApply_errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	columns := testColumns()

	t.Run("query-error-returned-unmodified", func(t *testing.T) {
		assert := assert.New(t)
		engineErr := stderrors.New("engine says no")
		q := &search.TestQuery{Err: engineErr}
		err := search.ApplyString(ctx, q, search.Default{}, columns, "age:1 name:2")
		assert.Same(engineErr, err)
		assert.Len(q.Calls, 1, "the pass stops at the first error")
	})
	t.Run("column-list-error", func(t *testing.T) {
		assert := assert.New(t)
		engineErr := stderrors.New("engine says no")
		q := &search.TestQuery{Err: engineErr}
		err := search.ApplyString(ctx, q, mustColumnList(t, "name", "status"), columns, "jo")
		assert.Same(engineErr, err)
		assert.Len(q.Calls, 1)
	})
	t.Run("custom-error", func(t *testing.T) {
		assert := assert.New(t)
		customErr := stderrors.New("custom")
		spec := search.CustomFunc(func(context.Context, string, search.Query) error { return customErr })
		err := search.ApplyString(ctx, &search.TestQuery{}, spec, columns, "x")
		assert.Same(customErr, err)
	})
	t.Run("missing-query", func(t *testing.T) {
		assert := assert.New(t)
		var q *search.TestQuery
		err := search.ApplyString(ctx, q, search.Default{}, columns, "age:1")
		assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("nil-custom-func", func(t *testing.T) {
		assert := assert.New(t)
		var fn search.CustomFunc
		err := search.ApplyString(ctx, &search.TestQuery{}, fn, columns, "age:1")
		assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("zero-column-list", func(t *testing.T) {
		assert := assert.New(t)
		err := search.ApplyString(ctx, &search.TestQuery{}, search.ColumnList{}, columns, "age:1")
		assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
	})
	t.Run("nil-spec-is-default", func(t *testing.T) {
		assert := assert.New(t)
		q := &search.TestQuery{}
		assert.NoError(search.ApplyString(ctx, q, nil, columns, "age:1"))
		assert.Len(q.Calls, 1)
	})
}

func TestApply_options(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)
	var predicates []search.Predicate
	var dropped []search.Dropped
	q := &search.TestQuery{}
	err := search.ApplyString(context.Background(), q, search.Default{}, testColumns(), "age:1 john nope:2 |name:%x%",
		search.WithLogger(hclog.New(&hclog.LoggerOptions{Level: hclog.Trace, Output: hclog.DefaultOutput})),
		search.WithPredicateFunc(func(p search.Predicate) { predicates = append(predicates, p) }),
		search.WithDroppedFunc(func(d search.Dropped) { dropped = append(dropped, d) }),
	)
	require.NoError(err)
	assert.Len(q.Calls, 2)
	assert.Equal([]search.Predicate{
		{Column: "age", Kind: search.Basic, Comparator: search.Equal, Operands: []any{"1"}, Connector: search.And},
		{Column: "name", Kind: search.Like, Operands: []any{"%x%"}, Connector: search.Or},
	}, predicates)
	assert.Equal([]search.Dropped{
		{Token: "john", Reason: search.MissingColon},
		{Token: "nope:2", Key: "nope", Reason: search.UnknownColumn},
	}, dropped)
}

func TestCompile(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	columns := testColumns()

	predicates, dropped := search.Compile("name:%jo% age:[1,2] status:!(a,b) Created:month,3 name:/x/ age:!=NULL x", columns,
		search.WithCaseInsensitiveLike(true))
	assert.Equal([]search.Predicate{
		{Column: "name", Kind: search.ILike, Operands: []any{"%jo%"}, Connector: search.And},
		{Column: "age", Kind: search.Between, Operands: []any{"1", "2"}, Connector: search.And},
		{Column: "status", Kind: search.NotIn, Operands: []any{"a", "b"}, Connector: search.And},
		{Column: "created_at", Kind: search.DateFunction, DatePart: search.Month, Operands: []any{"3"}, Connector: search.And},
		{Column: "name", Kind: search.Regexp, Operands: []any{"x"}, Connector: search.And},
		{Column: "age", Kind: search.Basic, Comparator: search.NotEqual, Operands: []any{nil}, Connector: search.And},
	}, predicates)
	assert.Equal([]search.Dropped{{Token: "x", Reason: search.MissingColon}}, dropped)

	assert.Equal(`and name ilike "%jo%"`, predicates[0].String())
	assert.Equal(`and age between "1", "2"`, predicates[1].String())
	assert.Equal(`and created_at month = "3"`, predicates[3].String())
	assert.Equal(`and age != NULL`, predicates[5].String())

	predicates, _ = search.Compile("name:%jo%", columns)
	assert.Equal(search.Like, predicates[0].Kind)

	predicates, dropped = search.Compile("", columns)
	assert.Empty(predicates)
	assert.Empty(dropped)
}

func TestNewColumnList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	assert, require := assert.New(t), require.New(t)
	_, err := search.NewColumnList(ctx)
	assert.True(errors.Match(errors.T(errors.InvalidParameter), err))
	_, err = search.NewColumnList(ctx, "name", "")
	assert.True(errors.Match(errors.T(errors.InvalidParameter), err))

	in := []string{"name", "email"}
	l, err := search.NewColumnList(ctx, in...)
	require.NoError(err)
	in[0] = "changed"
	got := l.Columns()
	assert.Equal([]string{"name", "email"}, got)
	got[1] = "changed"
	assert.Equal([]string{"name", "email"}, l.Columns())
}
