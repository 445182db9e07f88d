// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package ssz

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

const (
	// BytesPerChunk is the size of a merkleization leaf.
	BytesPerChunk = 32

	// BytesPerLengthOffset is the size of a container offset slot.
	BytesPerLengthOffset = 4

	// MaxSerializedSize is the largest encoding a 4-byte offset can address.
	MaxSerializedSize = math.MaxUint32
)

// Uint128 is a 128 bit unsigned integer in its little-endian SSZ form.
type Uint128 [16]byte

// Uint256 is a 256 bit unsigned integer in its little-endian SSZ form.
type Uint256 [32]byte

// Uint128FromUint64s assembles a 128 bit integer from its low and high words.
func Uint128FromUint64s(lo, hi uint64) Uint128 {
	var n Uint128
	binary.LittleEndian.PutUint64(n[:8], lo)
	binary.LittleEndian.PutUint64(n[8:], hi)
	return n
}

// Uint64s splits a 128 bit integer into its low and high words.
func (n Uint128) Uint64s() (lo, hi uint64) {
	return binary.LittleEndian.Uint64(n[:8]), binary.LittleEndian.Uint64(n[8:])
}

// Uint256FromInt converts a uint256.Int into its SSZ form.
//
// Note, a nil pointer is treated as zero.
func Uint256FromInt(n *uint256.Int) Uint256 {
	var out Uint256
	if n == nil {
		return out
	}
	n.MarshalSSZInto(out[:])
	return out
}

// Int converts the SSZ form of a 256 bit integer into a uint256.Int.
func (n Uint256) Int() *uint256.Int {
	z := new(uint256.Int)
	z.UnmarshalSSZ(n[:])
	return z
}

// MarshalBool appends the 1 byte encoding of a boolean.
func MarshalBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// MarshalUint8 appends the 1 byte encoding of a uint8.
func MarshalUint8(dst []byte, n uint8) []byte {
	return append(dst, n)
}

// MarshalUint16 appends the 2 byte little-endian encoding of a uint16.
func MarshalUint16(dst []byte, n uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, n)
}

// MarshalUint32 appends the 4 byte little-endian encoding of a uint32.
func MarshalUint32(dst []byte, n uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, n)
}

// MarshalUint64 appends the 8 byte little-endian encoding of a uint64.
func MarshalUint64(dst []byte, n uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, n)
}

// MarshalUint128 appends the 16 byte little-endian encoding of a uint128.
func MarshalUint128(dst []byte, n Uint128) []byte {
	return append(dst, n[:]...)
}

// MarshalUint256 appends the 32 byte little-endian encoding of a uint256.
func MarshalUint256(dst []byte, n Uint256) []byte {
	return append(dst, n[:]...)
}

// UnmarshalBool parses a boolean from exactly 1 byte.
func UnmarshalBool(buf []byte) (bool, error) {
	if len(buf) != 1 {
		return false, fmt.Errorf("%w: boolean from %d bytes", ErrLengthMismatch, len(buf))
	}
	return decodeBool(buf[0])
}

// decodeBool interprets a single byte as a boolean, rejecting anything not
// strictly 0 or 1.
func decodeBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: found %#x", ErrInvalidBoolean, b)
	}
}

// UnmarshalUint8 parses a uint8 from exactly 1 byte.
func UnmarshalUint8(buf []byte) (uint8, error) {
	if len(buf) != 1 {
		return 0, fmt.Errorf("%w: uint8 from %d bytes", ErrLengthMismatch, len(buf))
	}
	return buf[0], nil
}

// UnmarshalUint16 parses a uint16 from exactly 2 bytes.
func UnmarshalUint16(buf []byte) (uint16, error) {
	if len(buf) != 2 {
		return 0, fmt.Errorf("%w: uint16 from %d bytes", ErrLengthMismatch, len(buf))
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// UnmarshalUint32 parses a uint32 from exactly 4 bytes.
func UnmarshalUint32(buf []byte) (uint32, error) {
	if len(buf) != 4 {
		return 0, fmt.Errorf("%w: uint32 from %d bytes", ErrLengthMismatch, len(buf))
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// UnmarshalUint64 parses a uint64 from exactly 8 bytes.
func UnmarshalUint64(buf []byte) (uint64, error) {
	if len(buf) != 8 {
		return 0, fmt.Errorf("%w: uint64 from %d bytes", ErrLengthMismatch, len(buf))
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// UnmarshalUint128 parses a uint128 from exactly 16 bytes.
func UnmarshalUint128(buf []byte) (Uint128, error) {
	var n Uint128
	if len(buf) != len(n) {
		return n, fmt.Errorf("%w: uint128 from %d bytes", ErrLengthMismatch, len(buf))
	}
	copy(n[:], buf)
	return n, nil
}

// UnmarshalUint256 parses a uint256 from exactly 32 bytes.
func UnmarshalUint256(buf []byte) (Uint256, error) {
	var n Uint256
	if len(buf) != len(n) {
		return n, fmt.Errorf("%w: uint256 from %d bytes", ErrLengthMismatch, len(buf))
	}
	copy(n[:], buf)
	return n, nil
}
