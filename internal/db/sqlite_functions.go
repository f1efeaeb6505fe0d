// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package db

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"sync"

	gosqlite "github.com/glebarez/go-sqlite"
)

// sqlite parses "X REGEXP Y" as regexp(Y, X) but ships no implementation.
func init() {
	gosqlite.MustRegisterDeterministicScalarFunction("regexp", 2, sqliteRegexp)
}

// compiled patterns, keyed by their source, shared by every connection.
var sqlitePatterns sync.Map

func sqliteRegexp(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := sqliteText(args[0])
	if !ok {
		return nil, nil
	}
	value, ok := sqliteText(args[1])
	if !ok {
		return nil, nil
	}
	re, err := compileSqlitePattern(pattern)
	if err != nil {
		return nil, err
	}
	return re.MatchString(value), nil
}

func compileSqlitePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := sqlitePatterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regexp %q: %w", pattern, err)
	}
	sqlitePatterns.Store(pattern, re)
	return re, nil
}

// sqliteText converts a function argument to the text sqlite would compare.
// NULL has no text and makes the whole expression NULL.
func sqliteText(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return fmt.Sprint(t), true
	}
}
