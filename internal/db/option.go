// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/errors"
)

type options struct {
	withDebug              bool
	withLogger             hclog.Logger
	withMaxOpenConnections int
}

// Option - how options are passed as args
type Option func(*options) error

func getDefaultOptions() options {
	return options{}
}

func getOpts(opt ...Option) (options, error) {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// WithDebug provides an optional debug flag.
func WithDebug(debug bool) Option {
	return func(o *options) error {
		o.withDebug = debug
		return nil
	}
}

// WithLogger provides an optional logger which receives errors from the
// database adapter.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) error {
		o.withLogger = l
		return nil
	}
}

// WithMaxOpenConnections provides an optional limit on open connections.
// Zero means unlimited.
func WithMaxOpenConnections(max int) Option {
	const op = "db.WithMaxOpenConnections"
	return func(o *options) error {
		if max < 0 {
			return errors.New(context.Background(), errors.InvalidParameter, op, "max open connections must not be negative")
		}
		o.withMaxOpenConnections = max
		return nil
	}
}
