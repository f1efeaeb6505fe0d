// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import "context"

// Errors returned from this package may be tested against these errors
// with errors.Is. Sentinel type errors like these are deprecated in favor of
// the Err type that includes unique Codes and a Matching function.
var (
	// ErrInvalidParameter is returned when an argument of an operation
	// contains illegal or invalid values.
	ErrInvalidParameter = E(context.Background(), WithCode(InvalidParameter), WithMsg("invalid parameter"))

	// ErrGridNotFound is returned when a search targets a grid that was
	// never registered.
	ErrGridNotFound = E(context.Background(), WithCode(NotFound), WithMsg("grid not found"))
)
