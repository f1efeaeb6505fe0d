// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package grid

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/gridsearch/internal/search"
)

type options struct {
	withSpec         search.Spec
	withPlacement    Placement
	withOrder        string
	withLimit        int
	withLogger       hclog.Logger
	withSearchConfig *search.Config
	withMetrics      *Metrics
}

// Option - how options are passed as args
type Option func(*options) error

func getDefaultOptions() options {
	return options{
		withSpec:      search.Default{},
		withPlacement: DefaultPlacement,
		withLogger:    hclog.NewNullLogger(),
	}
}

func getOpts(opt ...Option) (options, error) {
	return applyOpts(getDefaultOptions(), opt...)
}

// applyOpts applies opt on top of opts.
func applyOpts(opts options, opt ...Option) (options, error) {
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

// WithSpec provides the search spec of a grid. A nil spec keeps
// search.Default.
func WithSpec(s search.Spec) Option {
	return func(o *options) error {
		if s != nil {
			o.withSpec = s
		}
		return nil
	}
}

// WithPlacement provides the placement hint of a grid's search trigger. An
// empty placement keeps DefaultPlacement.
func WithPlacement(p Placement) Option {
	return func(o *options) error {
		if p != "" {
			o.withPlacement = p
		}
		return nil
	}
}

// WithOrder provides the default order of a grid's rows.
func WithOrder(order string) Option {
	return func(o *options) error {
		o.withOrder = order
		return nil
	}
}

// WithLimit provides the maximum number of rows a search returns. Zero
// means DefaultLimit.
func WithLimit(limit int) Option {
	return func(o *options) error {
		o.withLimit = limit
		return nil
	}
}

// WithLogger provides an optional logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.withLogger = l
		}
		return nil
	}
}

// WithSearchConfig provides the config holding the request parameter key
// of the search string.
func WithSearchConfig(c *search.Config) Option {
	return func(o *options) error {
		o.withSearchConfig = c
		return nil
	}
}

// WithMetrics provides the collectors a Repository updates.
func WithMetrics(m *Metrics) Option {
	return func(o *options) error {
		o.withMetrics = m
		return nil
	}
}
