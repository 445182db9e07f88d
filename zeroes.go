// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"reflect"
	"sync"
)

// zeroCache contains blank instances of the object types that were hit as nil
// fields while encoding, hashing or sizing. The instances are only ever read,
// never decoded into.
var zeroCache sync.Map

// zeroObject retrieves the cached blank instance of U, creating it on first
// use.
func zeroObject[T interface {
	Object
	*U
}, U any]() T {
	kind := reflect.TypeOf((*U)(nil)).Elem()
	if val, ok := zeroCache.Load(kind); ok {
		return val.(T)
	}
	val, _ := zeroCache.LoadOrStore(kind, T(new(U)))
	return val.(T)
}

// zeroValueStatic returns the blank instance standing in for a nil static
// object field.
func zeroValueStatic[T newableStaticObject[U], U any]() T {
	return zeroObject[T, U]()
}

// zeroValueDynamic returns the blank instance standing in for a nil dynamic
// object field.
func zeroValueDynamic[T newableDynamicObject[U], U any]() T {
	return zeroObject[T, U]()
}
