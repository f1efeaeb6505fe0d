// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

// Info contains details of the specific error code
type Info struct {
	// Kind specifies the kind of error (unknown, parameter, integrity, etc).
	Kind Kind

	// Message provides a default message for the error code
	Message string
}

// errorCodeInfo provides a map of unique Codes (IDs) to their
// corresponding Kind and a default Message.
var errorCodeInfo = map[Code]Info{
	Unknown: {
		Message: "unknown",
		Kind:    Other,
	},
	InvalidParameter: {
		Message: "invalid parameter",
		Kind:    Parameter,
	},
	NotFound: {
		Message: "not found",
		Kind:    Parameter,
	},
	InvalidConfig: {
		Message: "invalid configuration",
		Kind:    Configuration,
	},
	Internal: {
		Message: "internal error",
		Kind:    Other,
	},
	Io: {
		Message: "error during io operation",
		Kind:    Other,
	},
	MissingTable: {
		Message: "missing table",
		Kind:    Integrity,
	},
	ColumnNotFound: {
		Message: "column not found",
		Kind:    Integrity,
	},
	RecordNotFound: {
		Message: "record not found",
		Kind:    Search,
	},
	QueryFailed: {
		Message: "query failed",
		Kind:    Search,
	},
}
