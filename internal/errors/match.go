// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

// Template describes the Err a caller expects. Only its non-zero fields take
// part in Match, so a template built from a Kind alone matches every code of
// that kind.
type Template struct {
	Err
	Kind Kind
}

// T builds a Template from any mix of Code, Kind, Op, message string and
// wrapped error. Other argument types are skipped and a later argument of a
// type replaces an earlier one.
func T(args ...any) *Template {
	t := &Template{}
	for _, a := range args {
		switch v := a.(type) {
		case Code:
			t.Code = v
		case Kind:
			t.Kind = v
		case Op:
			t.Op = v
		case string:
			t.Msg = v
		case *Err:
			// copied so later changes to v don't leak into the template
			c := *v
			t.Wrapped = &c
		case error:
			t.Wrapped = v
		}
	}
	return t
}

// Info returns the Info of the template's Code, or an Info carrying only its
// Kind when no Code is set.
func (t *Template) Info() Info {
	switch {
	case t == nil:
		return errorCodeInfo[Unknown]
	case t.Code != Unknown:
		return t.Code.Info()
	case t.Kind != Other:
		return Info{Message: "Unknown", Kind: t.Kind}
	}
	return errorCodeInfo[Unknown]
}

// Error satisfies error so a Template can be wrapped by another Template. It
// carries no detail on purpose: templates are for matching only.
func (t *Template) Error() string {
	return "Template error"
}

// Match reports whether err is, or wraps, an *Err agreeing with every set
// field of t. Joined errors, including multierror values, are searched too.
func Match(t *Template, err error) bool {
	if t == nil || err == nil {
		return false
	}
	var e *Err
	if !As(err, &e) {
		return false
	}
	return t.matches(e)
}

func (t *Template) matches(e *Err) bool {
	switch {
	case t.Code != Unknown && t.Code != e.Code:
		return false
	case t.Msg != "" && t.Msg != e.Msg:
		return false
	case t.Op != "" && t.Op != e.Op:
		return false
	case t.Kind != Other && t.Info().Kind != e.Info().Kind:
		return false
	}
	switch w := t.Wrapped.(type) {
	case nil:
		return true
	case *Template:
		return Match(w, e.Wrapped)
	default:
		return e.Wrapped == nil || w.Error() == e.Wrapped.Error()
	}
}
