// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"fmt"
	"reflect"
	"sync"
)

// Sizer is an SSZ static and dynamic size computer. In fixed mode only the
// fixed part of a container is accounted for: static fields and 4-byte offset
// slots, but no variable payloads.
type Sizer struct {
	codec *Codec // Self-referencing to pass DefineSSZ calls through (API trick)
	fixed bool   // Whether only the fixed part is being measured
	size  uint64 // Size accumulated for the container being measured
	slots int    // Offset slots defined by the container being measured
}

// addFixed accounts for a static field.
func (siz *Sizer) addFixed(n uint64) {
	siz.size += n
}

// addOffset accounts for the offset slot of a variable field.
func (siz *Sizer) addOffset() {
	siz.size += BytesPerLengthOffset
	siz.slots++
}

// addContent accounts for the payload of a variable field.
func (siz *Sizer) addContent(n uint64) {
	if !siz.fixed {
		siz.size += n
	}
}

// sizeObject measures a container, either only its fixed part or the whole.
func (siz *Sizer) sizeObject(obj Object, fixed bool) uint64 {
	size, mode, slots := siz.size, siz.fixed, siz.slots
	siz.size, siz.fixed, siz.slots = 0, fixed, 0

	obj.DefineSSZ(siz.codec)
	res := siz.size

	siz.size, siz.fixed, siz.slots = size, mode, slots
	return res
}

// staticCache tracks the object types already verified to have no variable
// fields.
var staticCache sync.Map

// ensureStatic panics if an object type placed into a static slot defines any
// offset slots.
func ensureStatic[T newableStaticObject[U], U any]() {
	kind := reflect.TypeOf((*U)(nil)).Elem()
	if _, ok := staticCache.Load(kind); ok {
		return
	}
	sizer := sizerPool.Get().(*Sizer)
	defer sizerPool.Put(sizer)

	obj := zeroValueStatic[T, U]()

	sizer.size, sizer.fixed, sizer.slots = 0, true, 0
	obj.DefineSSZ(sizer.codec)

	if sizer.slots != 0 {
		panic(fmt.Sprintf("ssz: %T defined as static object but has %d dynamic fields", obj, sizer.slots))
	}
	staticCache.Store(kind, struct{}{})
}
