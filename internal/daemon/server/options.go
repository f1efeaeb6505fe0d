// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package server

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
)

type options struct {
	withLogger             hclog.Logger
	withPrometheusRegistry *prometheus.Registry
	withReadTimeout        time.Duration
	withShutdownTimeout    time.Duration
}

// Option - how options are passed as args
type Option func(*options) error

func getDefaultOptions() options {
	return options{
		withLogger:          hclog.NewNullLogger(),
		withShutdownTimeout: 5 * time.Second,
	}
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

// WithLogger provides an optional logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.withLogger = l
		}
		return nil
	}
}

// WithPrometheusRegistry provides the registry the api collectors are
// registered with and /metrics is served from. Without it the server
// creates its own.
func WithPrometheusRegistry(r *prometheus.Registry) Option {
	return func(o *options) error {
		o.withPrometheusRegistry = r
		return nil
	}
}

// WithReadTimeout provides an optional read timeout for requests.
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("provided read timeout %q must not be negative", d)
		}
		o.withReadTimeout = d
		return nil
	}
}

// WithShutdownTimeout provides how long a shutdown waits for in flight
// requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("provided shutdown timeout %q must be positive", d)
		}
		o.withShutdownTimeout = d
		return nil
	}
}
