// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import (
	"fmt"
	"strings"
)

// Kind is the operation a Predicate is emitted as.
type Kind int

const (
	UnknownKind Kind = iota
	Like
	ILike
	In
	NotIn
	Between
	DateFunction
	Regexp
	Basic
)

func (k Kind) String() string {
	switch k {
	case Like:
		return "like"
	case ILike:
		return "ilike"
	case In:
		return "in"
	case NotIn:
		return "not in"
	case Between:
		return "between"
	case DateFunction:
		return "date function"
	case Regexp:
		return "regexp"
	case Basic:
		return "basic"
	default:
		return "unknown"
	}
}

// Predicate is a typed filter ready to be emitted on a Query. Operands hold:
//
//   - In, NotIn: the set values
//   - Between: start and end
//   - DateFunction, Basic: the value
//   - Like, ILike, Regexp: the pattern as a string
type Predicate struct {
	Column     string
	Kind       Kind
	Comparator Comparator
	DatePart   DatePart
	Operands   []any
	Connector  Connector
}

// NewPredicate combines a binding with its classified condition. Pattern
// shaped conditions become ILike when caseInsensitive is set; the "%" basic
// comparison is always a case sensitive Like.
func NewPredicate(b Binding, c Condition, caseInsensitive bool) Predicate {
	p := Predicate{Column: b.Column, Connector: b.Connector}
	switch c.Shape {
	case SetShape:
		p.Kind = In
		if c.Negated {
			p.Kind = NotIn
		}
		p.Operands = c.Values
	case RangeShape:
		p.Kind = Between
		p.Operands = c.Values
	case DatePartShape:
		p.Kind = DateFunction
		p.DatePart = c.DatePart
		p.Operands = []any{c.Value}
	case PatternShape:
		p.Kind = Like
		if caseInsensitive {
			p.Kind = ILike
		}
		p.Operands = []any{c.Pattern}
	case RegexpShape:
		p.Kind = Regexp
		p.Operands = []any{c.Pattern}
	default:
		if c.Comparator == Contains {
			p.Kind = Like
			p.Operands = []any{c.Value}
			break
		}
		p.Kind = Basic
		p.Comparator = c.Comparator
		if p.Comparator == "" {
			p.Comparator = Equal
		}
		p.Operands = []any{c.Value}
	}
	return p
}

// String renders the predicate for logs and the explain command.
func (p Predicate) String() string {
	var s strings.Builder
	s.WriteString(p.Connector.String())
	s.WriteString(" ")
	s.WriteString(p.Column)
	s.WriteString(" ")
	switch p.Kind {
	case Basic:
		s.WriteString(string(p.Comparator))
	case DateFunction:
		s.WriteString(string(p.DatePart))
		s.WriteString(" =")
	default:
		s.WriteString(p.Kind.String())
	}
	for i, o := range p.Operands {
		if i > 0 {
			s.WriteString(",")
		}
		s.WriteString(" ")
		s.WriteString(formatOperand(o))
	}
	return s.String()
}

func formatOperand(o any) string {
	if o == nil {
		return nullLiteral
	}
	return fmt.Sprintf("%q", fmt.Sprint(o))
}
