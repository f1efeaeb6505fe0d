// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Op represents an operation (package.function).
// For example iam.CreateRole
type Op string

// Err provides the ability to specify a Msg, Op, Code and Wrapped error.
// Errs must have a Code and all other fields are optional. We've chosen Err
// over Error for the identifier to support the easy embedding of Errs.  Errs
// can be embedded without a conflict between the embedded Err and Err.Error().
type Err struct {
	// Code is the error's code, which can be used to get the error's
	// errorCodeInfo, which contains the error's Kind and Message
	Code Code

	// Msg for the error
	Msg string

	// Op represents the operation raising/propagating an error and is optional.
	Op Op

	// Wrapped is the error which this Err wraps and will be nil if there's no
	// error being wrapped.
	Wrapped error
}

// New creates a new Err with the provided code, op and msg.  It supports the
// option of WithWrap.
func New(_ context.Context, c Code, op Op, msg string, opt ...Option) error {
	opts := GetOpts(opt...)
	return &Err{
		Code:    c,
		Op:      op,
		Msg:     msg,
		Wrapped: opts.withErrWrapped,
	}
}

// Wrap creates a new Err from the provided err and op, preserving the code
// from the originating error. It supports the options of WithCode and
// WithMsg.
func Wrap(_ context.Context, e error, op Op, opt ...Option) error {
	if e == nil {
		return nil
	}
	if converted := Convert(e); converted != nil {
		e = converted
	}
	opts := GetOpts(opt...)
	var code Code
	switch {
	case opts.withCode != Unknown:
		code = opts.withCode
	default:
		var err *Err
		if As(e, &err) {
			code = err.Code
		}
	}
	return &Err{
		Code:    code,
		Op:      op,
		Msg:     opts.withErrMsg,
		Wrapped: e,
	}
}

// E creates a new Err with provided code and supports the options of:
//
// * WithOp() - allows you to specify an optional Op (operation)
//
// * WithMsg() - allows you to specify an optional error msg, if the default
// msg for the error Code is not sufficient.
//
// * WithWrap() - allows you to specify an error to wrap.
//
// * WithCode() - allows you to specify the Code.
func E(_ context.Context, opt ...Option) error {
	opts := GetOpts(opt...)
	if opts.withCode == Unknown && opts.withErrWrapped != nil {
		var err *Err
		if As(opts.withErrWrapped, &err) {
			opts.withCode = err.Code
		}
	}
	return &Err{
		Code:    opts.withCode,
		Op:      opts.withOp,
		Msg:     opts.withErrMsg,
		Wrapped: opts.withErrWrapped,
	}
}

// Info about the Err
func (e *Err) Info() Info {
	if e == nil {
		return errorCodeInfo[Unknown]
	}
	if info, ok := errorCodeInfo[e.Code]; ok {
		return info
	}
	return errorCodeInfo[Unknown]
}

// Error satisfies the error interface and returns a string representation of
// the Err
func (e *Err) Error() string {
	if e == nil {
		return ""
	}
	var s strings.Builder
	if e.Op != "" {
		join(&s, ": ", string(e.Op))
	}
	if e.Msg != "" {
		join(&s, ": ", e.Msg)
	}

	var skipInfo bool
	var wrapped *Err
	if As(e.Wrapped, &wrapped) {
		// if wrapped error code is the same as this error, don't print redundant info
		skipInfo = wrapped.Code == e.Code
	}

	if info, ok := errorCodeInfo[e.Code]; ok && !skipInfo {
		if e.Msg == "" {
			join(&s, ": ", info.Message) // provide a default.
			join(&s, ", ", info.Kind.String())
		} else {
			join(&s, ": ", info.Kind.String())
		}
		join(&s, ": ", fmt.Sprintf("error #%d", e.Code))
	}

	if e.Wrapped != nil {
		join(&s, ": ", e.Wrapped.Error())
	}
	return s.String()
}

func join(str *strings.Builder, delim string, s string) {
	if str.Len() == 0 {
		_, _ = str.WriteString(s)
		return
	}
	_, _ = str.WriteString(delim + s)
}

// Unwrap implements the errors.Unwrap interface and allows callers to use the
// errors.Is() and errors.As() functions effectively for any wrapped errors.
func (e *Err) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// Is the std errors.Is function
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As the std errors.As function
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap the std errors.Unwrap function
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// IsNotFoundError returns true if the error is a not found error.
func IsNotFoundError(err error) bool {
	return Match(T(NotFound), err) || Match(T(RecordNotFound), err)
}
