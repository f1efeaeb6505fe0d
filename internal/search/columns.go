// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

import "sort"

// Column is a searchable column of a grid.
type Column struct {
	// Name is the canonical column name used in predicates.
	Name string
	// Label is the display label; a binding key may use it instead of Name.
	Label string
}

// ColumnMap resolves a binding key, either a display label or a canonical
// name, to a canonical column name. It's read-only once built and safe for
// concurrent use.
type ColumnMap struct {
	keys map[string]string
}

// NewColumnMap registers, for each column in order, its label and then its
// name. A later registration overwrites an earlier one, so a label that
// collides with another column's name resolves to whichever was registered
// last. Columns without a name and empty labels are skipped.
func NewColumnMap(columns ...Column) *ColumnMap {
	m := &ColumnMap{keys: make(map[string]string, len(columns)*2)}
	for _, c := range columns {
		if c.Name == "" {
			continue
		}
		if c.Label != "" {
			m.keys[c.Label] = c.Name
		}
		m.keys[c.Name] = c.Name
	}
	return m
}

// Resolve returns the canonical column name for key.
func (m *ColumnMap) Resolve(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	name, ok := m.keys[key]
	return name, ok
}

// Len returns the number of registered keys.
func (m *ColumnMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the registered keys in sorted order.
func (m *ColumnMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
