// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import "strings"

// Shape is one of the condition grammars, listed in priority order.
type Shape int

const (
	UnknownShape Shape = iota
	SetShape
	RangeShape
	DatePartShape
	PatternShape
	RegexpShape
	BasicShape
)

func (s Shape) String() string {
	switch s {
	case SetShape:
		return "set"
	case RangeShape:
		return "range"
	case DatePartShape:
		return "date part"
	case PatternShape:
		return "pattern"
	case RegexpShape:
		return "regexp"
	case BasicShape:
		return "basic"
	default:
		return "unknown"
	}
}

// nullLiteral is the value converted to NULL in sets and basic comparisons.
const nullLiteral = "NULL"

// Condition is classified condition text. Only the fields of its Shape are
// set:
//
//   - SetShape: Values and Negated
//   - RangeShape: Values holds start and end
//   - DatePartShape: DatePart and Value
//   - PatternShape and RegexpShape: Pattern
//   - BasicShape: Comparator and Value
type Condition struct {
	Shape      Shape
	Negated    bool
	Values     []any
	DatePart   DatePart
	Comparator Comparator
	Value      any
	Pattern    string
}

// Classify matches text against the shapes in priority order; the first
// match wins. Every text matches at least BasicShape.
func Classify(text string) Condition {
	if c, ok := matchSet(text); ok {
		return c
	}
	if c, ok := matchRange(text); ok {
		return c
	}
	if c, ok := matchDatePart(text); ok {
		return c
	}
	if c, ok := matchPattern(text); ok {
		return c
	}
	if c, ok := matchRegexp(text); ok {
		return c
	}
	return matchBasic(text)
}

// matchSet finds "(values)" starting at the first "(" and ending at the last
// ")", with at least one character in between. A "!" right before the "("
// negates the set.
func matchSet(text string) (Condition, bool) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return Condition{}, false
	}
	closing := strings.LastIndexByte(text, ')')
	if closing < open+2 {
		return Condition{}, false
	}
	parts := strings.Split(text[open+1:closing], ",")
	values := make([]any, 0, len(parts))
	for _, p := range parts {
		if p == nullLiteral {
			values = append(values, nil)
			continue
		}
		values = append(values, p)
	}
	return Condition{
		Shape:   SetShape,
		Negated: open > 0 && text[open-1] == '!',
		Values:  values,
	}, true
}

// matchRange finds "[start,end]": the first "[", the first "," after it and
// the first "]" after that.
func matchRange(text string) (Condition, bool) {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return Condition{}, false
	}
	comma := strings.IndexByte(text[open+1:], ',')
	if comma < 0 {
		return Condition{}, false
	}
	comma += open + 1
	closing := strings.IndexByte(text[comma+1:], ']')
	if closing < 0 {
		return Condition{}, false
	}
	closing += comma + 1
	return Condition{
		Shape:  RangeShape,
		Values: []any{text[open+1 : comma], text[comma+1 : closing]},
	}, true
}

// matchDatePart finds the leftmost "<part>," and takes the rest of the text
// as the value.
func matchDatePart(text string) (Condition, bool) {
	for i := 0; i < len(text); i++ {
		for _, part := range datePartNames {
			prefix := string(part) + ","
			if strings.HasPrefix(text[i:], prefix) {
				return Condition{
					Shape:    DatePartShape,
					DatePart: part,
					Value:    text[i+len(prefix):],
				}, true
			}
		}
	}
	return Condition{}, false
}

// matchPattern finds the leftmost "%text%" where text has no "%". The
// pattern keeps its percent signs.
func matchPattern(text string) (Condition, bool) {
	start := strings.IndexByte(text, '%')
	for start >= 0 {
		next := strings.IndexByte(text[start+1:], '%')
		if next < 0 {
			return Condition{}, false
		}
		end := start + 1 + next
		if end > start+1 {
			return Condition{Shape: PatternShape, Pattern: text[start : end+1]}, true
		}
		start = end
	}
	return Condition{}, false
}

// matchRegexp takes everything between the first and the last "/".
func matchRegexp(text string) (Condition, bool) {
	open := strings.IndexByte(text, '/')
	closing := strings.LastIndexByte(text, '/')
	if open < 0 || closing == open {
		return Condition{}, false
	}
	return Condition{Shape: RegexpShape, Pattern: text[open+1 : closing]}, true
}

// matchBasic reads an optional comparator prefix and the value. The "%"
// prefix wraps the value in percent signs, then "NULL" becomes nil and a
// value wrapped in double quotes loses them.
func matchBasic(text string) Condition {
	cmp := Equal
	for _, c := range []Comparator{GreaterOrEqual, Greater, LessOrEqual, Less, NotEqual, Contains} {
		if strings.HasPrefix(text, string(c)) {
			cmp = c
			text = text[len(c):]
			break
		}
	}
	if cmp == Contains {
		return Condition{Shape: BasicShape, Comparator: Contains, Value: "%" + text + "%"}
	}
	if text == nullLiteral {
		return Condition{Shape: BasicShape, Comparator: cmp, Value: nil}
	}
	return Condition{Shape: BasicShape, Comparator: cmp, Value: unquote(text)}
}

// unquote strips a leading and a trailing double quote when both are
// present. A lone quote is both and leaves an empty value.
func unquote(s string) string {
	if !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return s
	}
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}
