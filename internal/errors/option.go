// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import "fmt"

// GetOpts - iterate the inbound Options and return a struct.
func GetOpts(opt ...Option) Options {
	opts := getDefaultOptions()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// Option - how Options are passed as arguments.
type Option func(*Options)

// Options - how Options are represented.
type Options struct {
	withCode       Code
	withErrWrapped error
	withErrMsg     string
	withOp         Op
}

func getDefaultOptions() Options {
	return Options{}
}

// WithCode provides an option to provide a code when creating a new
// error.
func WithCode(code Code) Option {
	return func(o *Options) {
		o.withCode = code
	}
}

// WithWrap provides an option to provide an error to wrap when creating a new
// error.
func WithWrap(e error) Option {
	return func(o *Options) {
		o.withErrWrapped = e
	}
}

// WithMsg provides an option to provide a message when creating a new
// error.  If args are provided, the the msg string is used as a fmt specifier
// for the arguments and the resulting string is used as the msg.
func WithMsg(msg string, args ...any) Option {
	return func(o *Options) {
		o.withErrMsg = msg
		if len(args) > 0 {
			o.withErrMsg = fmt.Sprintf(msg, args...)
		}
	}
}

// WithOp provides an option to provide the operation that's raising/propagating
// the error.
func WithOp(op Op) Option {
	return func(o *Options) {
		o.withOp = op
	}
}
