// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package clause

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/gridsearch/internal/db"
	"github.com/hashicorp/gridsearch/internal/errors"
	"github.com/hashicorp/gridsearch/internal/search"
)

// Builder accumulates a flat where condition with "?" placeholders. It
// implements search.Query for the postgres and sqlite dialects. Each call
// appends one clause joined to the previous ones by its connector, left to
// right and without parentheses; the first clause's connector is ignored.
// A Builder is used by a single search at a time.
type Builder struct {
	dialect db.DbType
	clauses []string
	args    []any
}

var _ search.Query = (*Builder)(nil)

// NewBuilder creates a Builder for the dialect.
func NewBuilder(dialect db.DbType) (*Builder, error) {
	const op = "clause.NewBuilder"
	switch dialect {
	case db.Postgres, db.Sqlite:
	default:
		return nil, errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("unsupported dialect %s", dialect))
	}
	return &Builder{dialect: dialect}, nil
}

// Condition returns the accumulated condition and its args. The condition
// is empty when nothing was added.
func (b *Builder) Condition() (string, []any) {
	var s strings.Builder
	for _, c := range b.clauses {
		s.WriteString(c)
	}
	return s.String(), append([]any(nil), b.args...)
}

// Len returns the number of clauses added.
func (b *Builder) Len() int {
	return len(b.clauses)
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() db.DbType {
	return b.dialect
}

// PrefersCaseInsensitiveLike is true for postgres, which has ilike. Sqlite's
// like is already case insensitive for ASCII.
func (b *Builder) PrefersCaseInsensitiveLike() bool {
	return b.dialect == db.Postgres
}

func (b *Builder) add(c search.Connector, clause string, args ...any) {
	if len(b.clauses) > 0 {
		clause = " " + c.String() + " " + clause
	}
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
}

// Where compares the column with value. A nil value is only allowed with
// "=" and "!=", which become "is null" and "is not null".
func (b *Builder) Where(column string, cmp search.Comparator, value any, c search.Connector) error {
	const op = "clause.(Builder).Where"
	if !cmp.Valid() {
		return errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("unsupported comparator %q", cmp))
	}
	col := QuoteIdentifier(column)
	if value == nil {
		switch cmp {
		case search.Equal:
			b.add(c, col+" is null")
		case search.NotEqual:
			b.add(c, col+" is not null")
		default:
			return errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("illegal operator and value combination: %s null", cmp))
		}
		return nil
	}
	b.add(c, fmt.Sprintf("%s %s ?", col, cmp), value)
	return nil
}

// WhereIn tests set membership. An empty set matches nothing, or everything
// when negated.
func (b *Builder) WhereIn(column string, values []any, not bool, c search.Connector) error {
	if len(values) == 0 {
		if not {
			b.add(c, "1 = 1")
		} else {
			b.add(c, "0 = 1")
		}
		return nil
	}
	op := "in"
	if not {
		op = "not in"
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	b.add(c, fmt.Sprintf("%s %s (%s)", QuoteIdentifier(column), op, placeholders), values...)
	return nil
}

// WhereBetween tests the inclusive range.
func (b *Builder) WhereBetween(column string, start, end any, c search.Connector) error {
	b.add(c, QuoteIdentifier(column)+" between ? and ?", start, end)
	return nil
}

// WhereDatePart compares a part of the column's date with value. On sqlite
// the part is extracted as text, so day and month values are left padded
// to two digits.
func (b *Builder) WhereDatePart(column string, part search.DatePart, value any, c search.Connector) error {
	const op = "clause.(Builder).WhereDatePart"
	col := QuoteIdentifier(column)
	if b.dialect == db.Postgres {
		switch part {
		case search.Date:
			b.add(c, col+"::date = ?", value)
		case search.Time:
			b.add(c, col+"::time = ?", value)
		case search.Day, search.Month, search.Year:
			b.add(c, fmt.Sprintf("extract(%s from %s) = ?", part, col), value)
		default:
			return errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("unsupported date part %q", part))
		}
		return nil
	}
	switch part {
	case search.Date:
		b.add(c, fmt.Sprintf("date(%s) = cast(? as text)", col), value)
	case search.Time:
		b.add(c, fmt.Sprintf("time(%s) = cast(? as text)", col), value)
	case search.Day:
		b.add(c, fmt.Sprintf("strftime('%%d', %s) = cast(? as text)", col), padTwo(value))
	case search.Month:
		b.add(c, fmt.Sprintf("strftime('%%m', %s) = cast(? as text)", col), padTwo(value))
	case search.Year:
		b.add(c, fmt.Sprintf("strftime('%%Y', %s) = cast(? as text)", col), value)
	default:
		return errors.New(context.Background(), errors.InvalidParameter, op, fmt.Sprintf("unsupported date part %q", part))
	}
	return nil
}

func padTwo(value any) any {
	s, ok := value.(string)
	if !ok || len(s) >= 2 {
		return value
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// WhereLike pattern matches the column. Sqlite has no ilike, so the case
// insensitive flag only changes the postgres rendering.
func (b *Builder) WhereLike(column string, pattern string, caseInsensitive bool, c search.Connector) error {
	op := "like"
	if caseInsensitive && b.dialect == db.Postgres {
		op = "ilike"
	}
	b.add(c, fmt.Sprintf("%s %s ?", QuoteIdentifier(column), op), pattern)
	return nil
}

// WhereRegexp matches the column against an unanchored regular expression.
func (b *Builder) WhereRegexp(column string, pattern string, c search.Connector) error {
	op := "regexp"
	if b.dialect == db.Postgres {
		op = "~"
	}
	b.add(c, fmt.Sprintf("%s %s ?", QuoteIdentifier(column), op), pattern)
	return nil
}

// QuoteIdentifier double quotes each dot separated part of an identifier,
// doubling embedded quotes.
func QuoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
