// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

// Code specifies a code for the error.
type Code uint32

// String will return the Code's Info.Message
func (c Code) String() string {
	return c.Info().Message
}

// Info will look up the Code's Info.  If the Info is not found, it will return
// Info for an Unknown Code.
func (c Code) Info() Info {
	if info, ok := errorCodeInfo[c]; ok {
		return info
	}
	return errorCodeInfo[Unknown]
}

const (
	Unknown Code = 0 // Unknown will be equal to a zero value for Codes

	// General function errors are reserved Codes 100-999
	InvalidParameter Code = 100 // InvalidParameter represents an invalid parameter for an operation.
	NotFound         Code = 101 // NotFound represents a resource (grid, route) that is not registered
	InvalidConfig    Code = 102 // InvalidConfig represents a configuration that failed validation
	Internal         Code = 103 // Internal represents an unexpected internal state
	Io               Code = 104 // Io represents an error during an io operation

	// DB errors are reserved Codes from 1000-1999
	MissingTable   Code = 1004 // MissingTable represents an undefined table error
	ColumnNotFound Code = 1005 // ColumnNotFound represents an undefined column error
	RecordNotFound Code = 1100 // RecordNotFound represents that a record/row was not found matching the criteria
	QueryFailed    Code = 1101 // QueryFailed represents a query the database refused to run
)
