// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Convert will convert the error to an Err when it originates from one of the
// supported database adapters.  It returns nil when the error is nil, is
// already an *Err or isn't a known database error.  The database error is
// kept as the wrapped error.
func Convert(e error) *Err {
	if e == nil {
		return nil
	}
	var alreadyConverted *Err
	if As(e, &alreadyConverted) {
		return nil
	}

	var pgxError *pgconn.PgError
	if As(e, &pgxError) {
		switch pgxError.Code {
		case "42703": // undefined_column
			return &Err{Code: ColumnNotFound, Msg: pgxError.Message, Wrapped: e}
		case "42P01": // undefined_table
			return &Err{Code: MissingTable, Msg: pgxError.Message, Wrapped: e}
		}
		return &Err{Code: QueryFailed, Msg: pgxError.Message, Wrapped: e}
	}

	// the pure go sqlite driver only exposes its result codes through the error
	// text, which is stable enough to match on.
	msg := e.Error()
	switch {
	case strings.Contains(msg, "no such column"):
		return &Err{Code: ColumnNotFound, Msg: sqliteMessage(msg), Wrapped: e}
	case strings.Contains(msg, "no such table"):
		return &Err{Code: MissingTable, Msg: sqliteMessage(msg), Wrapped: e}
	case strings.Contains(msg, "SQL logic error"):
		return &Err{Code: QueryFailed, Msg: sqliteMessage(msg), Wrapped: e}
	}
	return nil
}

// sqliteMessage trims the driver prefix and result code suffix from a sqlite
// error, e.g. "SQL logic error: no such column: agee (1)" -> "no such column: agee".
func sqliteMessage(msg string) string {
	if i := strings.Index(msg, "no such "); i >= 0 {
		msg = msg[i:]
	}
	msg = strings.TrimPrefix(msg, "SQL logic error: ")
	if i := strings.LastIndex(msg, " ("); i > 0 && strings.HasSuffix(msg, ")") {
		msg = msg[:i]
	}
	return msg
}
