// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package util

import "reflect"

// IsNil reports whether i is nil or an interface holding a nil pointer, map,
// chan, func or slice. Callers use it before invoking methods on an injected
// dependency such as a Query or a logger.
func IsNil(i any) bool {
	if i == nil {
		return true
	}
	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func:
		return reflect.ValueOf(i).IsNil()
	}
	return false
}
