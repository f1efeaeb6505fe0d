// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import "strings"

// Binding is a token split into the column it targets and the condition
// text still to be classified.
type Binding struct {
	Column    string
	Condition string
	Connector Connector
}

// DropReason explains why a token produced no binding.
type DropReason int

const (
	MissingColon DropReason = iota + 1
	UnknownColumn
)

func (r DropReason) String() string {
	switch r {
	case MissingColon:
		return "missing colon"
	case UnknownColumn:
		return "unknown column"
	default:
		return "unknown"
	}
}

// Dropped is a token ignored by the binding parser. Dropping is not an
// error: a malformed search yields fewer predicates.
type Dropped struct {
	Token  string
	Key    string
	Reason DropReason
}

// ParseBinding splits token on its first colon. A key starting with "|"
// makes the binding or-combined. The key, without the "|", must resolve
// through columns.
func ParseBinding(token string, columns *ColumnMap) (Binding, *Dropped) {
	key, condition, ok := strings.Cut(token, ":")
	if !ok {
		return Binding{}, &Dropped{Token: token, Reason: MissingColon}
	}
	connector := And
	if k, found := strings.CutPrefix(key, "|"); found {
		key, connector = k, Or
	}
	column, ok := columns.Resolve(key)
	if !ok {
		return Binding{}, &Dropped{Token: token, Key: key, Reason: UnknownColumn}
	}
	return Binding{Column: column, Condition: condition, Connector: connector}, nil
}

// ParseBindings parses every token in order, returning the bindings and the
// dropped tokens.
func ParseBindings(tokens []string, columns *ColumnMap) ([]Binding, []Dropped) {
	var bindings []Binding
	var dropped []Dropped
	for _, t := range tokens {
		b, d := ParseBinding(t, columns)
		if d != nil {
			dropped = append(dropped, *d)
			continue
		}
		bindings = append(bindings, b)
	}
	return bindings, dropped
}
