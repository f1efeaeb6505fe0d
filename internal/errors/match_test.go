// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	t.Parallel()
	driverErr := stderrors.New("no such column: nope")
	wrapped := &Err{Code: ColumnNotFound, Op: "db.(RW).Query"}

	tests := []struct {
		name string
		args []any
		want *Template
	}{
		{
			name: "every field",
			args: []any{"unknown column", Op("grid.(Repository).Search"), ColumnNotFound, driverErr, Integrity},
			want: &Template{
				Err:  Err{Code: ColumnNotFound, Msg: "unknown column", Op: "grid.(Repository).Search", Wrapped: driverErr},
				Kind: Integrity,
			},
		},
		{
			name: "last kind wins",
			args: []any{Search, Configuration},
			want: &Template{Kind: Configuration},
		},
		{
			name: "err is copied",
			args: []any{wrapped},
			want: &Template{Err: Err{Wrapped: &Err{Code: ColumnNotFound, Op: "db.(RW).Query"}}},
		},
		{
			name: "unsupported types are skipped",
			args: []any{42, 1.5, []string{"id"}},
			want: &Template{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, T(tt.args...))
		})
	}

	got := T(wrapped)
	wrapped.Msg = "changed later"
	assert.Empty(t, got.Wrapped.(*Err).Msg)
}

func TestTemplate_Info(t *testing.T) {
	t.Parallel()
	var missing *Template
	assert.Equal(t, errorCodeInfo[Unknown], missing.Info())
	assert.Equal(t, errorCodeInfo[Unknown], T().Info())
	assert.Equal(t, errorCodeInfo[NotFound], T(NotFound).Info())
	assert.Equal(t, errorCodeInfo[NotFound], T(NotFound, Integrity).Info(), "the code takes precedence")
	assert.Equal(t, Info{Kind: Search, Message: "Unknown"}, T(Search).Info())
	assert.Equal(t, "Template error", T(InvalidConfig, "bad grid").Error())
}

func TestMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	driverErr := stderrors.New("no such column: nope")
	errConfig := E(ctx, WithCode(InvalidConfig), WithMsg("missing table"))
	errColumn := E(ctx, WithCode(ColumnNotFound), WithMsg("unknown column"))
	searchErr := E(ctx,
		WithCode(ColumnNotFound),
		WithMsg("unknown column"),
		WithOp("grid.(Repository).Search"),
		WithWrap(driverErr),
	)

	tests := []struct {
		name     string
		template *Template
		err      error
		want     bool
	}{
		{name: "nil template", template: nil, err: searchErr},
		{name: "nil err", template: T(Integrity), err: nil},
		{name: "not an Err", template: T(ColumnNotFound), err: driverErr},
		{name: "kind", template: T(Integrity), err: searchErr, want: true},
		{name: "other kind", template: T(Search), err: searchErr},
		{name: "code", template: T(ColumnNotFound), err: searchErr, want: true},
		{name: "other code", template: T(MissingTable), err: searchErr},
		{name: "op", template: T(Op("grid.(Repository).Search")), err: searchErr, want: true},
		{name: "other op", template: T(Op("grid.Explain")), err: searchErr},
		{name: "msg", template: T("unknown column"), err: searchErr, want: true},
		{name: "other msg", template: T("unknown table"), err: searchErr},
		{name: "wrapped std error", template: T(driverErr), err: searchErr, want: true},
		{name: "other wrapped error", template: T(stderrors.New("syntax error")), err: searchErr},
		{
			name:     "wrapped template",
			template: T(Op("daemon.search"), T(InvalidConfig)),
			err:      E(ctx, WithOp("daemon.search"), WithWrap(errConfig)),
			want:     true,
		},
		{
			name:     "wrapped template mismatch",
			template: T(Op("daemon.search"), T(ColumnNotFound)),
			err:      E(ctx, WithOp("daemon.search"), WithWrap(errConfig)),
		},
		{
			name:     "everything",
			template: T("unknown column", Integrity, ColumnNotFound, driverErr, Op("grid.(Repository).Search")),
			err:      searchErr,
			want:     true,
		},
		{name: "join", template: T(InvalidConfig), err: stderrors.Join(driverErr, errConfig), want: true},
		{name: "first Err of a join", template: T(ColumnNotFound), err: stderrors.Join(errColumn, errConfig), want: true},
		{name: "multierror", template: T(InvalidConfig), err: multierror.Append(driverErr, errConfig), want: true},
		{name: "multierror no Err", template: T(InvalidConfig), err: multierror.Append(driverErr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.template, tt.err))
		})
	}
}
