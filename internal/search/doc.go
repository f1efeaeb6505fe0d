// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

/*
Package search compiles a free text quick search string into filter
predicates and applies them to a Query.

With the Default spec the string is split into whitespace separated
tokens, double quoted substrings staying whole. Each token is
"<column>:<condition>", where the column is a name or a display label
registered in a ColumnMap and a leading "|" or-combines the clause. The
condition is classified by the first matching shape:

	status:(1,2,NULL)          set membership, "!(...)" for not in
	age:[18,30]                between
	created_at:date,2024-01-01 date part equality (date, time, day, month, year)
	name:%john%                like, ilike when the query prefers it
	email:/^j.*@example/       regular expression
	age:>=18                   basic comparison: >=, >, <=, <, !=, % or =

Malformed input never fails: tokens without a colon and unknown columns
are dropped. Errors only come from the Query and are returned as is.

The ColumnList spec matches the raw string against each listed column with
or-combined likes, and a CustomFunc receives the raw string and the Query.

Clauses are accumulated left to right without grouping, so

	a:1 |b:2 c:3

is a = 1 or b = 2 and c = 3 and grouping follows the precedence of the
Query's engine.
*/
package search
