// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import "errors"

// ErrLengthMismatch is returned when the input byte count does not match the
// statically known shape of the type being decoded.
var ErrLengthMismatch = errors.New("ssz: length mismatch")

// ErrInvalidBoolean is returned when a boolean is decoded from a byte that is
// neither 0x00 nor 0x01.
var ErrInvalidBoolean = errors.New("ssz: invalid boolean")

// ErrInvalidPadding is returned when a bitvector or bitlist has bits set in
// its padding region.
var ErrInvalidPadding = errors.New("ssz: non-zero bit padding")

// ErrMissingDelimiter is returned when a bitlist does not carry a length
// delimiter bit (empty or all-zero input).
var ErrMissingDelimiter = errors.New("ssz: bitlist delimiter missing")

// ErrMaxItemsExceeded is returned when the number of items in a dynamic list
// type is larger than permitted.
var ErrMaxItemsExceeded = errors.New("ssz: maximum item count exceeded")

// ErrMalformedOffset is returned when a container's offset table violates its
// ordering or bounds invariants. The more specific offset errors below are
// always reported wrapped together with this one.
var ErrMalformedOffset = errors.New("ssz: malformed offset")

// ErrFirstOffsetMismatch is returned when parsing dynamic types and the first
// offset (which is supposed to signal the start of the dynamic area) does not
// match with the computed fixed area size.
var ErrFirstOffsetMismatch = errors.New("ssz: first offset mismatch")

// ErrBadOffsetProgression is returned when an offset is parsed, and is smaller
// than a previously seen offset (meaning negative dynamic data size).
var ErrBadOffsetProgression = errors.New("ssz: offset smaller than previous")

// ErrOffsetBeyondCapacity is returned when an offset is parsed, and is larger
// than the total capacity allowed by the decoder (i.e. message size)
var ErrOffsetBeyondCapacity = errors.New("ssz: offset beyond capacity")

// ErrTruncatedInput is returned when the input ends before all the fields of
// the type could be read.
var ErrTruncatedInput = errors.New("ssz: truncated input")

// ErrLimitExceeded is returned when merkleizing more chunks than the limit of
// the type permits.
var ErrLimitExceeded = errors.New("ssz: chunk limit exceeded")

// ErrBufferTooSmall is returned from encoding if the provided output byte buffer
// is too small to hold the encoding of the object.
var ErrBufferTooSmall = errors.New("ssz: output buffer too small")

// ErrAllocationFailure is returned when an internal buffer would need to grow
// beyond what 4-byte offsets can address.
var ErrAllocationFailure = errors.New("ssz: buffer allocation failed")

// ErrInvalidSelector is returned when a union selector is out of range or is
// inconsistent with its payload.
var ErrInvalidSelector = errors.New("ssz: invalid union selector")

// ErrStrideMismatch is returned when packing values whose total byte length is
// not a multiple of the declared element stride.
var ErrStrideMismatch = errors.New("ssz: data not divisible by stride")

// ErrIndexOutOfRange is returned when a Merkle proof is requested for a leaf
// that is not part of the tree.
var ErrIndexOutOfRange = errors.New("ssz: leaf index out of range")
