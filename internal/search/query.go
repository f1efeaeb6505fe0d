// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package search

// Connector combines a clause with the clauses already applied to a Query.
type Connector int

const (
	And Connector = iota
	Or
)

func (c Connector) String() string {
	switch c {
	case Or:
		return "or"
	default:
		return "and"
	}
}

// Comparator is the operator of a basic comparison.
type Comparator string

const (
	Equal          Comparator = "="
	NotEqual       Comparator = "!="
	Greater        Comparator = ">"
	GreaterOrEqual Comparator = ">="
	Less           Comparator = "<"
	LessOrEqual    Comparator = "<="

	// Contains is the "%" prefix of a basic comparison. It never reaches a
	// Query: it's emitted as a case sensitive like with the value wrapped in
	// percent signs.
	Contains Comparator = "%"
)

// Valid reports whether c is a comparator a Query has to support.
func (c Comparator) Valid() bool {
	switch c {
	case Equal, NotEqual, Greater, GreaterOrEqual, Less, LessOrEqual:
		return true
	}
	return false
}

// DatePart names the function applied to a column before an equality
// comparison.
type DatePart string

const (
	Date  DatePart = "date"
	Time  DatePart = "time"
	Day   DatePart = "day"
	Month DatePart = "month"
	Year  DatePart = "year"
)

// datePartNames are scanned in this order, which only matters for names
// sharing a prefix.
var datePartNames = []DatePart{Date, Time, Day, Month, Year}

// Query is the capability set a search is applied to. Each call appends one
// clause, combined with the previous clauses by its Connector in call order.
// A nil value stands for NULL. Implementations decide how to group mixed
// and/or clauses; the core never adds grouping of its own.
type Query interface {
	// Where compares the column with value.
	Where(column string, cmp Comparator, value any, c Connector) error

	// WhereIn tests set membership, or its negation when not is true.
	WhereIn(column string, values []any, not bool, c Connector) error

	// WhereBetween tests that the column lies in the inclusive range.
	WhereBetween(column string, start, end any, c Connector) error

	// WhereDatePart compares the date part of the column with value.
	WhereDatePart(column string, part DatePart, value any, c Connector) error

	// WhereLike pattern matches the column.
	WhereLike(column string, pattern string, caseInsensitive bool, c Connector) error

	// WhereRegexp matches the column against an unanchored regular
	// expression.
	WhereRegexp(column string, pattern string, c Connector) error

	// PrefersCaseInsensitiveLike reports whether pattern shaped conditions
	// should be case insensitive for this query's dialect.
	PrefersCaseInsensitiveLike() bool
}
