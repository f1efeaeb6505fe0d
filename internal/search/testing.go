// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

// TestCall is one call recorded by a TestQuery.
type TestCall struct {
	Method    string
	Column    string
	Args      []any
	Connector Connector
}

// TestQuery is a Query that records its calls. When Err is set every call
// records and then returns it.
type TestQuery struct {
	CaseInsensitiveLike bool
	Err                 error
	Calls               []TestCall
}

var _ Query = (*TestQuery)(nil)

func (q *TestQuery) record(method, column string, c Connector, args ...any) error {
	q.Calls = append(q.Calls, TestCall{Method: method, Column: column, Args: args, Connector: c})
	return q.Err
}

func (q *TestQuery) Where(column string, cmp Comparator, value any, c Connector) error {
	return q.record("Where", column, c, cmp, value)
}

func (q *TestQuery) WhereIn(column string, values []any, not bool, c Connector) error {
	if not {
		return q.record("WhereNotIn", column, c, values...)
	}
	return q.record("WhereIn", column, c, values...)
}

func (q *TestQuery) WhereBetween(column string, start, end any, c Connector) error {
	return q.record("WhereBetween", column, c, start, end)
}

func (q *TestQuery) WhereDatePart(column string, part DatePart, value any, c Connector) error {
	return q.record("WhereDatePart", column, c, part, value)
}

func (q *TestQuery) WhereLike(column string, pattern string, caseInsensitive bool, c Connector) error {
	if caseInsensitive {
		return q.record("WhereILike", column, c, pattern)
	}
	return q.record("WhereLike", column, c, pattern)
}

func (q *TestQuery) WhereRegexp(column string, pattern string, c Connector) error {
	return q.record("WhereRegexp", column, c, pattern)
}

func (q *TestQuery) PrefersCaseInsensitiveLike() bool {
	return q.CaseInsensitiveLike
}
