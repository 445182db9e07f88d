// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

// newableStaticObject is a generic type whose purpose is to enforce that the
// ssz.Object is specifically implemented on a struct pointer. That is needed
// to allow to instantiate new structs via `new` when parsing.
type newableStaticObject[U any] interface {
	Object
	*U
}

// newableDynamicObject is the dynamic counterpart of newableStaticObject. The
// two are kept apart so that call sites document the kind of field they hold,
// static slots are verified to hold no variable fields at runtime.
type newableDynamicObject[U any] interface {
	Object
	*U
}

// Basic is the set of element types that homogeneous vectors and lists can be
// made of. Booleans are stored one byte per element, not bit-packed.
type Basic interface {
	bool | uint8 | uint16 | uint32 | uint64 | Uint128 | Uint256
}
