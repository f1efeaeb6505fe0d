// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import "github.com/hashicorp/go-hclog"

// getOpts - iterate the inbound Options and return a struct
func getOpts(opt ...Option) options {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// Option - how Options are passed as arguments.
type Option func(*options)

// options = how options are represented
type options struct {
	withLogger              hclog.Logger
	withCaseInsensitiveLike bool
	withPredicateFunc       func(Predicate)
	withDroppedFunc         func(Dropped)
}

func getDefaultOptions() options {
	return options{
		withLogger: hclog.NewNullLogger(),
	}
}

// WithLogger provides an optional logger. Dropped tokens and emitted
// predicates are logged at trace level.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.withLogger = l
		}
	}
}

// WithCaseInsensitiveLike makes Compile emit pattern shaped conditions as
// ILike. Apply ignores it and asks the Query instead.
func WithCaseInsensitiveLike(b bool) Option {
	return func(o *options) {
		o.withCaseInsensitiveLike = b
	}
}

// WithPredicateFunc provides a func called with every predicate before it's
// emitted.
func WithPredicateFunc(fn func(Predicate)) Option {
	return func(o *options) {
		o.withPredicateFunc = fn
	}
}

// WithDroppedFunc provides a func called with every token the binding
// parser drops.
func WithDroppedFunc(fn func(Dropped)) Option {
	return func(o *options) {
		o.withDroppedFunc = fn
	}
}
